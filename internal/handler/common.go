package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-dashboard/internal/apiclient"
	"github.com/iliyamo/cinema-dashboard/internal/flash"
	"github.com/iliyamo/cinema-dashboard/internal/middleware"
	"github.com/iliyamo/cinema-dashboard/internal/queue"
	"github.com/iliyamo/cinema-dashboard/internal/session"
	"github.com/iliyamo/cinema-dashboard/internal/view"
)

// Auditor receives an event after each successful dashboard mutation.
type Auditor interface {
	Publish(ctx context.Context, ev queue.AuditEvent) error
}

// NopAuditor discards events.
type NopAuditor struct{}

func (NopAuditor) Publish(context.Context, queue.AuditEvent) error { return nil }

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Page not found")
	}
	return id, nil
}

// render writes a full page, or only its content block for htmx.
func render(c echo.Context, status int, name, title string, data any) error {
	return c.Render(status, name, view.NewPage(c, title, data))
}

// fail records the generic error toast and sends the viewer to target.
// A cancelled request gets no toast.
func fail(c echo.Context, log logrus.FieldLogger, target string, err error, status int) error {
	if errors.Is(err, context.Canceled) {
		return echo.NewHTTPError(499, "request cancelled")
	}
	entry := log.WithField("request_url", c.Request().URL.String())
	if err != nil {
		entry = entry.WithError(err)
	}
	if status != 0 {
		entry = entry.WithField("upstream_status", status)
	}
	entry.Warn("api call failed")
	flash.Error(c, flash.GenericError)
	return middleware.Redirect(c, target)
}

// succeed records a success toast and sends the viewer to target.
func succeed(c echo.Context, target, msg string) error {
	flash.Success(c, msg)
	return middleware.Redirect(c, target)
}

// upstreamError converts an API read failure into the HTTP error the
// error page renders; a missing resource becomes a 404.
func upstreamError(err error, notFound string) error {
	if errors.Is(err, apiclient.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	}
	if errors.Is(err, context.Canceled) {
		// The viewer went away; nobody reads the response.
		return echo.NewHTTPError(499, "request cancelled")
	}
	return err
}

// publish sends ev stamped with the viewer's identity.  Failures are
// logged by the auditor and never reach the viewer.
func publish(c echo.Context, a Auditor, ev queue.AuditEvent, status int) {
	s := session.From(c)
	ev.ActorID = s.UserID
	ev.ActorEmail = s.Email
	ev.Status = status
	_ = a.Publish(context.WithoutCancel(c.Request().Context()), ev)
}
