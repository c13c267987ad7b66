package view

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-dashboard/internal/flash"
)

// ErrorData is the payload of the error page.
type ErrorData struct {
	Status  int
	Message string
}

// ErrorHandler renders failures as the error page.  Internal errors are
// logged and shown with the generic message only.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		msg := flash.GenericError

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if s, ok := he.Message.(string); ok && status < 500 {
				msg = s
			}
		}
		if status >= 500 {
			log.WithError(err).WithField("request_url", c.Request().URL.String()).Error("request failed")
		}
		if status == http.StatusNotFound && msg == http.StatusText(http.StatusNotFound) {
			msg = "Page not found"
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		page := NewPage(c, http.StatusText(status), ErrorData{Status: status, Message: msg})
		if rerr := c.Render(status, "error", page); rerr != nil {
			log.WithError(rerr).Error("render error page")
			_ = c.String(status, msg)
		}
	}
}
