package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/cinema-dashboard/internal/model"
)

// GetGenres lists all genres.
func (c *Client) GetGenres(ctx context.Context) ([]model.Genre, error) {
	var out []model.Genre
	if err := c.getJSON(ctx, "/genres", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateGenre adds a genre; the API answers 201 on success.
func (c *Client) CreateGenre(ctx context.Context, name, token string) (int, error) {
	return c.send(ctx, http.MethodPost, "/genres", token, map[string]string{"name": name})
}

// DeleteGenre removes a genre.
func (c *Client) DeleteGenre(ctx context.Context, id uint64, token string) (int, error) {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/genres/%d", id), token, nil)
}
