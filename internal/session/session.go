// Package session describes who is looking at a page.  A Session is
// resolved once per request from the access token cookie and handed to
// handlers explicitly; nothing in the application reads auth state from
// a global.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-dashboard/internal/model"
)

// CookieName is the cookie holding the API access token.
const CookieName = "access_token"

const contextKey = "session"

// ErrNoToken is returned by Parse for an empty token string.
var ErrNoToken = errors.New("session: no token")

// Session is the viewer of the current request.  The zero value is an
// anonymous viewer.
type Session struct {
	AccessToken string
	UserID      uint64
	Email       string
	Roles       []model.Role
}

// Anonymous returns the session of a viewer without a valid token.
func Anonymous() Session { return Session{} }

// IsAuthenticated reports whether the viewer presented a valid token.
func (s Session) IsAuthenticated() bool { return s.AccessToken != "" }

// HasRole reports whether the viewer carries role r.
func (s Session) HasRole(r model.Role) bool {
	for _, v := range s.Roles {
		if v == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the viewer may open the dashboard.
func (s Session) IsAdmin() bool {
	return s.HasRole(model.RoleAdmin) || s.HasRole(model.RoleSuperAdmin)
}

// IsSuperAdmin reports whether the viewer may manage other users.
func (s Session) IsSuperAdmin() bool { return s.HasRole(model.RoleSuperAdmin) }

// Parse verifies an HS256 access token issued by the API and extracts
// the viewer's identity.  The token must carry a subject; roles come
// from the "roles" array claim or, for older tokens, a single "role".
func Parse(raw, secret string) (Session, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Session{}, ErrNoToken
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, fmt.Errorf("session: parse token: %w", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, errors.New("session: invalid claims")
	}

	s := Session{AccessToken: raw}
	switch sub := claims["sub"].(type) {
	case float64:
		s.UserID = uint64(sub)
	case string:
		n, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return Session{}, fmt.Errorf("session: invalid subject %q", sub)
		}
		s.UserID = n
	default:
		return Session{}, errors.New("session: missing subject")
	}
	s.Email, _ = claims["email"].(string)

	if list, ok := claims["roles"].([]interface{}); ok {
		for _, v := range list {
			if r, ok := v.(string); ok && r != "" {
				s.Roles = append(s.Roles, model.Role(strings.ToUpper(r)))
			}
		}
	} else if r, ok := claims["role"].(string); ok && r != "" {
		s.Roles = []model.Role{model.Role(strings.ToUpper(r))}
	}
	return s, nil
}

// Set stores s on the echo context.
func Set(c echo.Context, s Session) { c.Set(contextKey, s) }

// From returns the session stored by the session middleware, or an
// anonymous session when none was stored.
func From(c echo.Context) Session {
	if s, ok := c.Get(contextKey).(Session); ok {
		return s
	}
	return Anonymous()
}

// Clear expires the token cookie and leaves an anonymous session on c.
func Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	Set(c, Anonymous())
}
