package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-dashboard/internal/apiclient"
	"github.com/iliyamo/cinema-dashboard/internal/filter"
	"github.com/iliyamo/cinema-dashboard/internal/form"
	"github.com/iliyamo/cinema-dashboard/internal/model"
	"github.com/iliyamo/cinema-dashboard/internal/queue"
	"github.com/iliyamo/cinema-dashboard/internal/rowactions"
	"github.com/iliyamo/cinema-dashboard/internal/session"
	"github.com/iliyamo/cinema-dashboard/internal/table"
)

const moviesPath = "/dashboard/movies"

type moviesPage struct {
	TableURL string
}

type pagedTable struct {
	Table      table.View
	Pagination pagination
}

type movieFormData struct {
	ID     uint64
	Action string
	Form   form.Movie
	Errors form.Errors
	Genres []model.Genre
}

func movieColumns(genres map[uint64]string) []table.Column[model.Movie] {
	yesNo := func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	}
	return []table.Column[model.Movie]{
		{Key: "id", Header: "Id", Sortable: true,
			Value:     func(m model.Movie) string { return strconv.FormatUint(m.ID, 10) },
			SortValue: func(m model.Movie) string { return table.PadNumber(m.ID) }},
		{Key: "name", Header: "Name", Sortable: true, Filterable: true,
			Value: func(m model.Movie) string { return m.Name }},
		{Key: "price", Header: "Price", Sortable: true,
			Value:     func(m model.Movie) string { return strconv.Itoa(m.Price) },
			SortValue: func(m model.Movie) string { return table.PadNumber(uint64(max(m.Price, 0))) }},
		{Key: "location", Header: "Location", Sortable: true,
			Value: func(m model.Movie) string { return string(m.Location) }},
		{Key: "genre", Header: "Genre", Sortable: true, Filterable: true,
			Value: func(m model.Movie) string { return genres[m.GenreID] }},
		{Key: "published", Header: "Published",
			Value: func(m model.Movie) string { return yesNo(m.Published) }},
		{Key: "actions", Header: "",
			Actions: func(m model.Movie) rowactions.Menu {
				return rowactions.New("movie", m.ID, m.Name,
					rowactions.Edit(moviesPath, m.ID),
					rowactions.Delete(moviesPath, m.ID))
			}},
	}
}

// Movies renders the dashboard movie page; the table loads separately.
func (h *DashboardHandler) Movies(c echo.Context) error {
	tableURL := moviesPath + "/table"
	if raw := c.QueryString(); raw != "" {
		tableURL += "?" + raw
	}
	return render(c, http.StatusOK, "dashboard/movies", "Movies", moviesPage{TableURL: tableURL})
}

// MoviesTable renders one page of all movies, published or not.
func (h *DashboardHandler) MoviesTable(c echo.Context) error {
	ctx := c.Request().Context()
	q := c.QueryParams()

	res, err := h.API.ListMovies(ctx, apiclient.MovieQuery{Page: filter.Page(q)}, session.From(c).AccessToken)
	if err != nil {
		return h.tableFailed(c, err)
	}
	names := map[uint64]string{}
	if genres, err := h.API.GetGenres(ctx); err == nil {
		for _, g := range genres {
			names[g.ID] = g.Name
		}
	}
	page := res.Page
	if page < 1 {
		page = filter.Page(q)
	}
	return c.Render(http.StatusOK, "paged-table", pagedTable{
		Table:      sortedView(c, movieColumns(names), res.Items),
		Pagination: pagination{Path: moviesPath, Query: q, Page: page, TotalPages: res.TotalPages},
	})
}

func (h *DashboardHandler) movieForm(c echo.Context, status int, data movieFormData) error {
	genres, err := h.API.GetGenres(c.Request().Context())
	if err != nil {
		h.Log.WithError(err).Warn("dashboard: genres unavailable for movie form")
	}
	data.Genres = genres
	title := "New movie"
	if data.ID != 0 {
		title = "Edit movie"
	}
	return dialog(c, status, "movie-form-dialog", "dashboard/movie_form", title, data)
}

// NewMovie opens the create dialog with default values.
func (h *DashboardHandler) NewMovie(c echo.Context) error {
	return h.movieForm(c, http.StatusOK, movieFormData{Action: moviesPath, Form: form.NewMovie(nil)})
}

// EditMovie opens the edit dialog pre-filled from the API.
func (h *DashboardHandler) EditMovie(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	m, err := h.API.GetMovie(c.Request().Context(), id, session.From(c).AccessToken)
	if err != nil {
		return upstreamError(err, "Movie not found")
	}
	return h.movieForm(c, http.StatusOK, movieFormData{
		ID:     id,
		Action: fmt.Sprintf("%s/%d", moviesPath, id),
		Form:   form.NewMovie(&m),
	})
}

// CreateMovie validates the dialog and creates the movie.
func (h *DashboardHandler) CreateMovie(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form")
	}
	f, errs := form.ParseMovie(values)
	if !errs.Valid() {
		return h.movieForm(c, http.StatusUnprocessableEntity, movieFormData{Action: moviesPath, Form: f, Errors: errs})
	}

	status, err := h.API.CreateMovie(c.Request().Context(), f.Input(), session.From(c).AccessToken)
	if err != nil || status != http.StatusCreated {
		return fail(c, h.Log, moviesPath, err, status)
	}
	ev := queue.NewAuditEvent(queue.ActionCreate, "movie", 0)
	ev.Detail = f.Name
	publish(c, h.Audit, ev, status)
	return succeed(c, moviesPath, "Movie created")
}

// UpdateMovie validates the dialog and saves the movie.
func (h *DashboardHandler) UpdateMovie(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form")
	}
	action := fmt.Sprintf("%s/%d", moviesPath, id)
	f, errs := form.ParseMovie(values)
	if !errs.Valid() {
		return h.movieForm(c, http.StatusUnprocessableEntity, movieFormData{ID: id, Action: action, Form: f, Errors: errs})
	}

	status, err := h.API.UpdateMovie(c.Request().Context(), id, f.Input(), session.From(c).AccessToken)
	if err != nil || status != http.StatusOK {
		return fail(c, h.Log, moviesPath, err, status)
	}
	publish(c, h.Audit, queue.NewAuditEvent(queue.ActionUpdate, "movie", id), status)
	return succeed(c, moviesPath, "Movie updated")
}

// ConfirmDeleteMovie opens the delete dialog for a movie.
func (h *DashboardHandler) ConfirmDeleteMovie(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	m, err := h.API.GetMovie(c.Request().Context(), id, session.From(c).AccessToken)
	if err != nil {
		return upstreamError(err, "Movie not found")
	}
	return confirmDelete(c, moviesPath, "movie", m.Name, id)
}

// DeleteMovie removes a movie with a single API call.
func (h *DashboardHandler) DeleteMovie(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	status, err := h.API.DeleteMovie(c.Request().Context(), id, session.From(c).AccessToken)
	if err != nil || !apiclient.IsSuccess(status) {
		return fail(c, h.Log, moviesPath, err, status)
	}
	publish(c, h.Audit, queue.NewAuditEvent(queue.ActionDelete, "movie", id), status)
	return succeed(c, moviesPath, "Movie deleted")
}
