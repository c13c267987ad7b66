package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-dashboard/internal/model"
	"github.com/iliyamo/cinema-dashboard/internal/session"
)

// LoadSession resolves the viewer from the access token cookie and
// stores it on the context.  A missing or invalid token yields an
// anonymous session; an invalid cookie is also cleared so the browser
// stops sending it.
func LoadSession(secret string, log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(session.CookieName)
			if err != nil || ck.Value == "" {
				session.Set(c, session.Anonymous())
				return next(c)
			}
			s, err := session.Parse(ck.Value, secret)
			if err != nil {
				log.WithError(err).Debug("session: discarding access token")
				session.Clear(c)
				return next(c)
			}
			session.Set(c, s)
			return next(c)
		}
	}
}

// RequireAuth sends anonymous viewers to the login page, remembering
// where they were going.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.From(c).IsAuthenticated() {
				return next(c)
			}
			target := "/login?next=" + url.QueryEscape(c.Request().URL.RequestURI())
			return Redirect(c, target)
		}
	}
}

// RequireRole answers 403 unless the viewer holds one of roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := session.From(c)
			for _, r := range roles {
				if s.HasRole(r) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "You do not have access to this page")
		}
	}
}

// RequireAdmin lets through viewers who may open the dashboard.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(model.RoleAdmin, model.RoleSuperAdmin)
}

// RequireSuperAdmin lets through viewers who may manage users.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return RequireRole(model.RoleSuperAdmin)
}

// Redirect issues a 303 to target.  htmx requests receive HX-Redirect
// instead so the browser performs a full navigation.
func Redirect(c echo.Context, target string) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", target)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, target)
}
