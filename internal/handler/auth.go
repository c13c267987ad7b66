package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-dashboard/internal/apiclient"
	"github.com/iliyamo/cinema-dashboard/internal/flash"
	"github.com/iliyamo/cinema-dashboard/internal/middleware"
	"github.com/iliyamo/cinema-dashboard/internal/session"
)

// AuthHandler signs viewers in and out.  Credentials are checked by the
// API; the dashboard only keeps the returned access token in a cookie.
type AuthHandler struct {
	API          *apiclient.Client
	Secret       string
	CookieSecure bool
	Log          logrus.FieldLogger
}

func NewAuthHandler(api *apiclient.Client, secret string, cookieSecure bool, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{API: api, Secret: secret, CookieSecure: cookieSecure, Log: log}
}

type loginData struct {
	Email string
	Next  string
	Error string
}

// ShowLogin renders the login form.  Signed-in viewers go straight on.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	next := safeNext(c.QueryParam("next"))
	if session.From(c).IsAuthenticated() {
		return middleware.Redirect(c, next)
	}
	return render(c, http.StatusOK, "login", "Log in", loginData{Next: next})
}

// Login exchanges credentials for an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")
	next := safeNext(c.FormValue("next"))
	data := loginData{Email: email, Next: next}

	if email == "" || password == "" {
		data.Error = "Email and password are required"
		return render(c, http.StatusUnprocessableEntity, "login", "Log in", data)
	}

	token, err := h.API.Login(c.Request().Context(), email, password)
	switch {
	case errors.Is(err, apiclient.ErrInvalidCredentials):
		data.Error = "Invalid email or password"
		return render(c, http.StatusUnauthorized, "login", "Log in", data)
	case err != nil:
		h.Log.WithError(err).Warn("login: api call failed")
		data.Error = flash.GenericError
		return render(c, http.StatusBadGateway, "login", "Log in", data)
	}

	// The token must be one this server can read back.
	if _, err := session.Parse(token, h.Secret); err != nil {
		h.Log.WithError(err).Error("login: api issued an unreadable token")
		data.Error = flash.GenericError
		return render(c, http.StatusBadGateway, "login", "Log in", data)
	}

	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return middleware.Redirect(c, next)
}

// Logout drops the token cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return middleware.Redirect(c, "/movies")
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/movies"
	}
	return next
}
