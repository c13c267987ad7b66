// Package table renders sortable, filterable grids for the dashboard.
// A Table is built from a fixed column set and a slice of rows; it
// produces a View that templates print without further logic.
package table

import (
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/iliyamo/cinema-dashboard/internal/rowactions"
)

// EmptyText is shown in the single row of an empty table.
const EmptyText = "No results."

// Column describes one grid column.
type Column[T any] struct {
	Key        string
	Header     string
	Sortable   bool
	Filterable bool
	// Value renders the cell text.
	Value func(T) string
	// HTML renders the cell as markup instead of text, e.g. an action menu.
	HTML func(T) template.HTML
	// Actions renders the row action menu.
	Actions func(T) rowactions.Menu
	// SortValue overrides Value for ordering; numeric columns return a
	// zero-padded string.
	SortValue func(T) string
}

// Table is a column set bound to rows.
type Table[T any] struct {
	Columns []Column[T]
	rows    []T
	sortKey string
	desc    bool
}

// New binds rows to columns.  The slice is copied so sorting never
// reorders the caller's data.
func New[T any](columns []Column[T], rows []T) *Table[T] {
	return &Table[T]{Columns: columns, rows: append([]T(nil), rows...)}
}

// Len returns the number of rows after filtering.
func (t *Table[T]) Len() int { return len(t.rows) }

// Filter keeps rows where any filterable column contains query,
// ignoring case.  An empty query keeps everything.
func (t *Table[T]) Filter(query string) *Table[T] {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return t
	}
	kept := t.rows[:0]
	for _, row := range t.rows {
		for _, col := range t.Columns {
			if col.Filterable && col.Value != nil && strings.Contains(strings.ToLower(col.Value(row)), query) {
				kept = append(kept, row)
				break
			}
		}
	}
	t.rows = kept
	return t
}

// Sort orders rows by the column with key.  Unknown or unsortable keys
// leave the order unchanged.
func (t *Table[T]) Sort(key string, desc bool) *Table[T] {
	col, ok := t.column(key)
	if !ok || !col.Sortable {
		return t
	}
	value := col.SortValue
	if value == nil {
		value = col.Value
	}
	if value == nil {
		return t
	}
	t.sortKey, t.desc = key, desc
	sort.SliceStable(t.rows, func(i, j int) bool {
		a, b := strings.ToLower(value(t.rows[i])), strings.ToLower(value(t.rows[j]))
		if desc {
			return a > b
		}
		return a < b
	})
	return t
}

func (t *Table[T]) column(key string) (Column[T], bool) {
	for _, c := range t.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// Header is a rendered column header.
type Header struct {
	Key      string
	Text     string
	Sortable bool
	Active   bool
	Desc     bool
}

// Cell is a rendered cell; HTML is set for markup cells and Actions for
// the action menu column.
type Cell struct {
	Text    string
	HTML    template.HTML
	Actions *rowactions.Menu
}

// View is what the table template prints.
type View struct {
	Headers []Header
	Rows    [][]Cell
	Empty   string
}

// View renders headers and cells.  Empty is set when there are no rows.
func (t *Table[T]) View() View {
	v := View{Headers: make([]Header, 0, len(t.Columns))}
	for _, c := range t.Columns {
		v.Headers = append(v.Headers, Header{
			Key:      c.Key,
			Text:     c.Header,
			Sortable: c.Sortable,
			Active:   c.Key == t.sortKey,
			Desc:     c.Key == t.sortKey && t.desc,
		})
	}
	if len(t.rows) == 0 {
		v.Empty = EmptyText
		return v
	}
	for _, row := range t.rows {
		cells := make([]Cell, 0, len(t.Columns))
		for _, c := range t.Columns {
			switch {
			case c.Actions != nil:
				m := c.Actions(row)
				cells = append(cells, Cell{Actions: &m})
			case c.HTML != nil:
				cells = append(cells, Cell{HTML: c.HTML(row)})
			case c.Value != nil:
				cells = append(cells, Cell{Text: c.Value(row)})
			default:
				cells = append(cells, Cell{})
			}
		}
		v.Rows = append(v.Rows, cells)
	}
	return v
}

// PadNumber formats n so that string order equals numeric order.
func PadNumber(n uint64) string {
	return fmt.Sprintf("%020d", n)
}
