package rowactions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieMenu(t *testing.T) {
	m := New("movie", 3, "Heat", Edit("/dashboard/movies", 3), Delete("/dashboard/movies", 3))

	assert.False(t, m.Empty())
	assert.Equal(t, "movie-3-actions", m.DOMID())
	assert.Equal(t, "/dashboard/movies/3/edit", m.Actions[0].Href)
	assert.Equal(t, "/dashboard/movies/3/delete", m.Actions[1].Href)
	assert.True(t, m.Actions[1].Confirm)
	assert.Equal(t, http.MethodGet, m.Actions[1].Method)
}

func TestUserMenuWithoutCapabilitiesIsEmpty(t *testing.T) {
	assert.True(t, New("user", 1, "a@b.c").Empty())
}

func TestToggleAdminLabel(t *testing.T) {
	assert.Equal(t, "Make admin", ToggleAdmin("/dashboard/users", 1, false).Label)
	a := ToggleAdmin("/dashboard/users", 1, true)
	assert.Equal(t, "Revoke admin", a.Label)
	assert.Equal(t, http.MethodPost, a.Method)
	assert.Equal(t, "/dashboard/users/1/admin", a.Href)
}

func TestDeleteConfirm(t *testing.T) {
	c := DeleteConfirm("/dashboard/genres", "genre", "Drama", 4)
	assert.Equal(t, "/dashboard/genres/4/delete", c.Action)
	assert.Equal(t, "/dashboard/genres", c.Cancel)
	assert.Contains(t, c.Message, `"Drama"`)
}
