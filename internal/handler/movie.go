package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-dashboard/internal/apiclient"
	"github.com/iliyamo/cinema-dashboard/internal/form"
	"github.com/iliyamo/cinema-dashboard/internal/model"
	"github.com/iliyamo/cinema-dashboard/internal/session"
)

type movieData struct {
	Movie     model.Movie
	GenreName string
	Reviews   []model.Review
	Personal  personalReview
}

// Movie renders a movie with its reviews.  ?review=edit opens the
// viewer's own review for editing.
func (h *CatalogHandler) Movie(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return h.renderMovie(c, http.StatusOK, id, c.QueryParam("review") == "edit", nil)
}

// submitted carries a rejected review form back into the page.
type submitted struct {
	form   form.Review
	errors form.Errors
}

func (h *CatalogHandler) renderMovie(c echo.Context, status int, id uint64, editing bool, sub *submitted) error {
	ctx := c.Request().Context()
	s := session.From(c)

	movie, err := h.API.GetMovie(ctx, id, s.AccessToken)
	if err != nil {
		return upstreamError(err, "Movie not found")
	}
	reviews, err := h.API.ListReviews(ctx, id)
	if err != nil {
		return upstreamError(err, "Movie not found")
	}

	var mine *model.Review
	if s.IsAuthenticated() {
		mine, err = h.API.GetMyReview(ctx, id, s.AccessToken)
		switch {
		case errors.Is(err, apiclient.ErrUnauthorized):
			// The API no longer accepts the token; show the login prompt.
			h.Log.WithField("user_id", s.UserID).Info("access token rejected upstream")
			session.Clear(c)
			s = session.Anonymous()
		case err != nil:
			return upstreamError(err, "Movie not found")
		}
	}

	// The viewer's own review is shown in its own block.
	others := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		if s.IsAuthenticated() && r.UserID == s.UserID {
			continue
		}
		others = append(others, r)
	}

	var genreName string
	if genres, err := h.API.GetGenres(ctx); err == nil {
		for _, g := range genres {
			if g.ID == movie.GenreID {
				genreName = g.Name
				break
			}
		}
	}

	// A rejected submission always shows the form so its errors are visible.
	if sub != nil && mine != nil {
		editing = true
	}
	personal := newPersonalReview(reviewState(s, mine, editing), id, mine, c.Request().URL.Path)
	if sub != nil {
		personal.Form = sub.form
		personal.Errors = sub.errors
	}

	return render(c, status, "movie", movie.Name, movieData{
		Movie:     movie,
		GenreName: genreName,
		Reviews:   others,
		Personal:  personal,
	})
}

// SubmitReview creates the viewer's review, or updates it when the form
// was rendered for an existing one.
func (h *CatalogHandler) SubmitReview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form")
	}
	existing := values.Get("existing") != ""

	f, errs := form.ParseReview(values)
	if !errs.Valid() {
		return h.renderMovie(c, http.StatusUnprocessableEntity, id, existing, &submitted{form: f, errors: errs})
	}

	ctx := c.Request().Context()
	token := session.From(c).AccessToken
	back := fmt.Sprintf("/movies/%d", id)

	if existing {
		status, err := h.API.EditReview(ctx, id, f.Input(), token)
		if err != nil || status != http.StatusOK {
			return fail(c, h.Log, back+"?review=edit", err, status)
		}
		return succeed(c, back, "Review updated")
	}

	status, err := h.API.CreateReview(ctx, id, f.Input(), token)
	if err != nil || status != http.StatusCreated {
		return fail(c, h.Log, back, err, status)
	}
	return succeed(c, back, "Review created")
}

// DeleteReview removes the viewer's review.
func (h *CatalogHandler) DeleteReview(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	back := fmt.Sprintf("/movies/%d", id)
	status, err := h.API.DeleteReview(c.Request().Context(), id, session.From(c).AccessToken)
	if err != nil || status != http.StatusOK {
		return fail(c, h.Log, back, err, status)
	}
	return succeed(c, back, "Review deleted")
}

