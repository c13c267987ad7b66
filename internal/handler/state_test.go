package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cinema-dashboard/internal/model"
	"github.com/iliyamo/cinema-dashboard/internal/session"
)

func TestReviewState(t *testing.T) {
	viewer := session.Session{AccessToken: "t", UserID: 2}
	mine := &model.Review{Text: "ok", Rating: 4}

	assert.Equal(t, ReviewUnauthenticated, reviewState(session.Anonymous(), mine, true))
	assert.Equal(t, ReviewNone, reviewState(viewer, nil, false))
	assert.Equal(t, ReviewNone, reviewState(viewer, nil, true), "editing needs an existing review")
	assert.Equal(t, ReviewViewing, reviewState(viewer, mine, false))
	assert.Equal(t, ReviewEditing, reviewState(viewer, mine, true))
}

func TestNewPersonalReviewPrefills(t *testing.T) {
	p := newPersonalReview(ReviewEditing, 3, &model.Review{Text: "ok", Rating: 2}, "/movies/3")
	assert.Equal(t, "ok", p.Form.Text)
	assert.Equal(t, 2, p.Form.Rating)

	p = newPersonalReview(ReviewNone, 3, nil, "/movies/3")
	assert.Equal(t, 5, p.Form.Rating)
	assert.Empty(t, p.Form.Text)
}

func TestToggleRole(t *testing.T) {
	roles, granted := toggleRole([]model.Role{model.RoleUser}, model.RoleAdmin)
	assert.True(t, granted)
	assert.Equal(t, []model.Role{model.RoleUser, model.RoleAdmin}, roles)

	roles, granted = toggleRole(roles, model.RoleAdmin)
	assert.False(t, granted)
	assert.Equal(t, []model.Role{model.RoleUser}, roles)
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/dashboard", safeNext("/dashboard"))
	assert.Equal(t, "/movies", safeNext(""))
	assert.Equal(t, "/movies", safeNext("https://evil.example.com"))
	assert.Equal(t, "/movies", safeNext("//evil.example.com"))
}
