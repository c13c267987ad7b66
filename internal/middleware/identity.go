package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-dashboard/internal/session"
)

// userID returns the viewer id as a key fragment, or "anon".
func userID(c echo.Context) string {
	s := session.From(c)
	if !s.IsAuthenticated() || s.UserID == 0 {
		return "anon"
	}
	return strconv.FormatUint(s.UserID, 10)
}
