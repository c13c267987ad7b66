package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-querystring/query"

	"github.com/iliyamo/cinema-dashboard/internal/model"
)

// MovieQuery filters the movie listing.
type MovieQuery struct {
	GenreID   uint64 `url:"genreId,omitempty"`
	Page      int    `url:"page,omitempty"`
	Published *bool  `url:"published,omitempty"`
}

// ListMovies returns one page of movies.
func (c *Client) ListMovies(ctx context.Context, q MovieQuery, token string) (model.MoviePage, error) {
	v, err := query.Values(q)
	if err != nil {
		return model.MoviePage{}, fmt.Errorf("apiclient: encode movie query: %w", err)
	}
	path := "/movies"
	if enc := v.Encode(); enc != "" {
		path += "?" + enc
	}
	var out model.MoviePage
	if err := c.getJSON(ctx, path, token, &out); err != nil {
		return model.MoviePage{}, err
	}
	return out, nil
}

// GetMovie fetches one movie.
func (c *Client) GetMovie(ctx context.Context, id uint64, token string) (model.Movie, error) {
	var out model.Movie
	if err := c.getJSON(ctx, fmt.Sprintf("/movies/%d", id), token, &out); err != nil {
		return model.Movie{}, err
	}
	return out, nil
}

// CreateMovie adds a movie; the API answers 201 on success.
func (c *Client) CreateMovie(ctx context.Context, in model.MovieInput, token string) (int, error) {
	return c.send(ctx, http.MethodPost, "/movies", token, in)
}

// UpdateMovie replaces a movie; the API answers 200 on success.
func (c *Client) UpdateMovie(ctx context.Context, id uint64, in model.MovieInput, token string) (int, error) {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/movies/%d", id), token, in)
}

// DeleteMovie removes a movie.
func (c *Client) DeleteMovie(ctx context.Context, id uint64, token string) (int, error) {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/movies/%d", id), token, nil)
}
