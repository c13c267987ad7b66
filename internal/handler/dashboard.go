package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-dashboard/internal/apiclient"
	"github.com/iliyamo/cinema-dashboard/internal/flash"
	"github.com/iliyamo/cinema-dashboard/internal/rowactions"
	"github.com/iliyamo/cinema-dashboard/internal/table"
	"github.com/iliyamo/cinema-dashboard/internal/view"
)

// DashboardHandler serves the admin pages for genres, users and movies.
// Routes are mounted behind RequireAuth and RequireAdmin; user
// management additionally requires SUPER_ADMIN.
type DashboardHandler struct {
	API   *apiclient.Client
	Audit Auditor
	Log   logrus.FieldLogger
}

func NewDashboardHandler(api *apiclient.Client, audit Auditor, log logrus.FieldLogger) *DashboardHandler {
	if audit == nil {
		audit = NopAuditor{}
	}
	return &DashboardHandler{API: api, Audit: audit, Log: log}
}

// dialog renders a fragment into the page's dialog slot for htmx, or a
// standalone page wrapping it otherwise.
func dialog(c echo.Context, status int, fragment, page, title string, data any) error {
	if view.IsHTMX(c) {
		return c.Render(status, fragment, data)
	}
	return render(c, status, page, title, data)
}

// confirmDelete shows the delete confirmation for one row.
func confirmDelete(c echo.Context, base, entity, label string, id uint64) error {
	cf := rowactions.DeleteConfirm(base, entity, label, id)
	return dialog(c, http.StatusOK, "confirm-dialog", "confirm", cf.Title, cf)
}

// sortedView applies the table query parameters: q filters, sort names a
// column and desc=1 reverses it.
func sortedView[T any](c echo.Context, cols []table.Column[T], rows []T) table.View {
	return table.New(cols, rows).
		Filter(c.QueryParam("q")).
		Sort(c.QueryParam("sort"), c.QueryParam("desc") == "1").
		View()
}

// tableFailed renders the inline error shown in place of a table whose
// data could not be loaded.
func (h *DashboardHandler) tableFailed(c echo.Context, err error) error {
	h.Log.WithError(err).WithField("request_url", c.Request().URL.String()).Warn("dashboard: table data unavailable")
	return c.Render(http.StatusOK, "table-error", flash.GenericError)
}
