package table

import (
	"html/template"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-dashboard/internal/rowactions"
)

type row struct {
	ID   uint64
	Name string
}

func columns() []Column[row] {
	return []Column[row]{
		{Key: "id", Header: "Id", Sortable: true,
			Value:     func(r row) string { return strconv.FormatUint(r.ID, 10) },
			SortValue: func(r row) string { return PadNumber(r.ID) }},
		{Key: "name", Header: "Name", Sortable: true, Filterable: true,
			Value: func(r row) string { return r.Name }},
		{Key: "actions",
			HTML: func(r row) template.HTML { return template.HTML("<b>menu</b>") }},
	}
}

func TestSortNumericAndText(t *testing.T) {
	rows := []row{{10, "beta"}, {2, "Alpha"}, {33, "gamma"}}

	v := New(columns(), rows).Sort("id", false).View()
	require.Len(t, v.Rows, 3)
	assert.Equal(t, "2", v.Rows[0][0].Text)
	assert.Equal(t, "33", v.Rows[2][0].Text)
	assert.True(t, v.Headers[0].Active)

	v = New(columns(), rows).Sort("name", true).View()
	assert.Equal(t, "gamma", v.Rows[0][1].Text)
	assert.Equal(t, "Alpha", v.Rows[2][1].Text)
	assert.True(t, v.Headers[1].Desc)

	assert.Equal(t, uint64(10), rows[0].ID, "caller slice must keep its order")
}

func TestSortIgnoresUnsortable(t *testing.T) {
	v := New(columns(), []row{{2, "b"}, {1, "a"}}).Sort("actions", false).View()
	assert.Equal(t, "2", v.Rows[0][0].Text)
}

func TestFilter(t *testing.T) {
	tbl := New(columns(), []row{{1, "Drama"}, {2, "Comedy"}, {3, "dramedy"}}).Filter("DRAM")
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 3, New(columns(), []row{{1, "a"}, {2, "b"}, {3, "c"}}).Filter("  ").Len())
}

func TestEmptyView(t *testing.T) {
	v := New(columns(), nil).View()
	assert.Empty(t, v.Rows)
	assert.Equal(t, "No results.", v.Empty)
	assert.Len(t, v.Headers, 3)
}

func TestHTMLCell(t *testing.T) {
	v := New(columns(), []row{{1, "a"}}).View()
	assert.Equal(t, template.HTML("<b>menu</b>"), v.Rows[0][2].HTML)
}

func TestPadNumber(t *testing.T) {
	assert.Less(t, PadNumber(9), PadNumber(10))
	assert.Len(t, PadNumber(0), 20)
}

func TestActionsCell(t *testing.T) {
	cols := []Column[row]{
		{Key: "id", Header: "ID", Value: func(r row) string { return PadNumber(r.ID) }},
		{Key: "actions", Header: "", Actions: func(r row) rowactions.Menu {
			return rowactions.New("genre", r.ID, r.Name, rowactions.Delete("/dashboard/genres", r.ID))
		}},
	}
	v := New(cols, []row{{5, "Drama"}}).View()
	require.NotNil(t, v.Rows[0][1].Actions)
	assert.Equal(t, "/dashboard/genres/5/delete", v.Rows[0][1].Actions.Actions[0].Href)
}
