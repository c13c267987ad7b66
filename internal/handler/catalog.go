package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-dashboard/internal/apiclient"
	"github.com/iliyamo/cinema-dashboard/internal/filter"
	"github.com/iliyamo/cinema-dashboard/internal/model"
	"github.com/iliyamo/cinema-dashboard/internal/session"
	"github.com/iliyamo/cinema-dashboard/internal/view"
)

// CatalogHandler serves the public movie pages and the viewer's review.
type CatalogHandler struct {
	API *apiclient.Client
	Log logrus.FieldLogger
}

func NewCatalogHandler(api *apiclient.Client, log logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{API: api, Log: log}
}

type pagination struct {
	Path       string
	Query      url.Values
	Page       int
	TotalPages int
}

type catalogData struct {
	Genres     []model.Genre
	Selected   string
	Carry      url.Values
	Movies     []model.Movie
	Pagination pagination
}

// Movies lists published movies for the genre and page in the query.
func (h *CatalogHandler) Movies(c echo.Context) error {
	return h.renderCatalog(c, c.QueryParams())
}

// Filter applies the genre chosen in the select and moves the viewer to
// the first page of the result.  Plain requests are redirected; htmx
// requests get the new listing and the URL is replaced in place.
func (h *CatalogHandler) Filter(c echo.Context) error {
	q := c.QueryParams()
	next := filter.ApplyGenre(q, q.Get(filter.ParamGenre))
	target := "/movies?" + next.Encode()
	if !view.IsHTMX(c) {
		return c.Redirect(http.StatusSeeOther, target)
	}
	c.Response().Header().Set("HX-Replace-Url", target)
	return h.renderCatalog(c, next)
}

func (h *CatalogHandler) renderCatalog(c echo.Context, q url.Values) error {
	ctx := c.Request().Context()
	s := session.From(c)

	genres, err := h.API.GetGenres(ctx)
	if err != nil {
		h.Log.WithError(err).Warn("catalog: genres unavailable")
		genres = nil
	}

	published := true
	page := filter.Page(q)
	res, err := h.API.ListMovies(ctx, apiclient.MovieQuery{
		GenreID:   filter.GenreID(q),
		Page:      page,
		Published: &published,
	}, s.AccessToken)
	if err != nil {
		return upstreamError(err, "Page not found")
	}
	if res.Page > 0 {
		page = res.Page
	}

	carry := url.Values{}
	for k, v := range q {
		if k != filter.ParamGenre && k != filter.ParamPage {
			carry[k] = v
		}
	}

	return render(c, http.StatusOK, "movies", "Movies", catalogData{
		Genres:   genres,
		Selected: filter.SelectedGenre(q),
		Carry:    carry,
		Movies:   res.Items,
		Pagination: pagination{
			Path:       "/movies",
			Query:      q,
			Page:       page,
			TotalPages: res.TotalPages,
		},
	})
}
