package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-dashboard/internal/apiclient"
	"github.com/iliyamo/cinema-dashboard/internal/form"
	"github.com/iliyamo/cinema-dashboard/internal/model"
	"github.com/iliyamo/cinema-dashboard/internal/queue"
	"github.com/iliyamo/cinema-dashboard/internal/rowactions"
	"github.com/iliyamo/cinema-dashboard/internal/session"
	"github.com/iliyamo/cinema-dashboard/internal/table"
)

const genresPath = "/dashboard/genres"

type genresPage struct {
	Form   form.Genre
	Errors form.Errors
}

func genreColumns() []table.Column[model.Genre] {
	return []table.Column[model.Genre]{
		{Key: "id", Header: "Id", Sortable: true,
			Value:     func(g model.Genre) string { return strconv.FormatUint(g.ID, 10) },
			SortValue: func(g model.Genre) string { return table.PadNumber(g.ID) }},
		{Key: "name", Header: "Name", Sortable: true, Filterable: true,
			Value: func(g model.Genre) string { return g.Name }},
		{Key: "actions", Header: "",
			Actions: func(g model.Genre) rowactions.Menu {
				return rowactions.New("genre", g.ID, g.Name, rowactions.Delete(genresPath, g.ID))
			}},
	}
}

// Genres renders the genres page; the table loads separately.
func (h *DashboardHandler) Genres(c echo.Context) error {
	return render(c, http.StatusOK, "dashboard/genres", "Genres", genresPage{})
}

// GenresTable renders the genres table fragment.
func (h *DashboardHandler) GenresTable(c echo.Context) error {
	genres, err := h.API.GetGenres(c.Request().Context())
	if err != nil {
		return h.tableFailed(c, err)
	}
	return c.Render(http.StatusOK, "table", sortedView(c, genreColumns(), genres))
}

// CreateGenre adds a genre.
func (h *DashboardHandler) CreateGenre(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form")
	}
	f, errs := form.ParseGenre(values)
	if !errs.Valid() {
		return render(c, http.StatusUnprocessableEntity, "dashboard/genres", "Genres", genresPage{Form: f, Errors: errs})
	}

	status, err := h.API.CreateGenre(c.Request().Context(), f.Name, session.From(c).AccessToken)
	if err != nil || !apiclient.IsSuccess(status) {
		return fail(c, h.Log, genresPath, err, status)
	}
	ev := queue.NewAuditEvent(queue.ActionCreate, "genre", 0)
	ev.Detail = f.Name
	publish(c, h.Audit, ev, status)
	return succeed(c, genresPath, "Genre created")
}

// ConfirmDeleteGenre opens the delete dialog for a genre.
func (h *DashboardHandler) ConfirmDeleteGenre(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	genres, err := h.API.GetGenres(c.Request().Context())
	if err != nil {
		return upstreamError(err, "Genre not found")
	}
	for _, g := range genres {
		if g.ID == id {
			return confirmDelete(c, genresPath, "genre", g.Name, id)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Genre not found")
}

// DeleteGenre removes a genre with a single API call.  The table is
// reloaded from the API afterwards; nothing is removed locally first.
func (h *DashboardHandler) DeleteGenre(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	status, err := h.API.DeleteGenre(c.Request().Context(), id, session.From(c).AccessToken)
	if err != nil || !apiclient.IsSuccess(status) {
		return fail(c, h.Log, genresPath, err, status)
	}
	publish(c, h.Audit, queue.NewAuditEvent(queue.ActionDelete, "genre", id), status)
	return succeed(c, genresPath, "Genre deleted")
}
