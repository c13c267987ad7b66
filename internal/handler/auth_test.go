package handler_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-dashboard/internal/session"
)

func TestLoginStoresTokenAndRedirects(t *testing.T) {
	a := newApp(t)
	tok := token(t, 2, "ADMIN")
	a.api.on(http.MethodPost, "/auth/login", http.StatusOK, map[string]string{"accessToken": tok})

	rec := a.do(http.MethodPost, "/login", "", url.Values{
		"email":    {" Admin@Example.com "},
		"password": {"secret"},
		"next":     {"/dashboard/genres"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/genres", rec.Header().Get(echo.HeaderLocation))

	var found bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			found = true
			assert.Equal(t, tok, ck.Value)
			assert.True(t, ck.HttpOnly)
		}
	}
	assert.True(t, found)

	c, ok := a.api.last(http.MethodPost, "/auth/login")
	require.True(t, ok)
	assert.JSONEq(t, `{"email":"admin@example.com","password":"secret"}`, string(c.Body))
}

func TestLoginRejectsOffsiteNext(t *testing.T) {
	a := newApp(t)
	a.api.on(http.MethodPost, "/auth/login", http.StatusOK, map[string]string{"accessToken": token(t, 2, "USER")})

	rec := a.do(http.MethodPost, "/login", "", url.Values{
		"email": {"a@b.c"}, "password": {"x"}, "next": {"//evil.example.com"},
	})
	assert.Equal(t, "/movies", rec.Header().Get(echo.HeaderLocation))
}

func TestLoginInvalidCredentials(t *testing.T) {
	a := newApp(t)
	a.api.on(http.MethodPost, "/auth/login", http.StatusUnauthorized, nil)

	rec := a.do(http.MethodPost, "/login", "", url.Values{"email": {"a@b.c"}, "password": {"x"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestLoginMissingFields(t *testing.T) {
	a := newApp(t)

	rec := a.do(http.MethodPost, "/login", "", url.Values{"email": {"a@b.c"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, a.api.mutations())
}

func TestLogoutClearsCookie(t *testing.T) {
	a := newApp(t)

	rec := a.do(http.MethodPost, "/logout", token(t, 2, "USER"), url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Equal(t, session.CookieName, rec.Result().Cookies()[0].Name)
	assert.True(t, rec.Result().Cookies()[0].MaxAge < 0)
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	rec := a.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
