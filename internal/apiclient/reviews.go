package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/iliyamo/cinema-dashboard/internal/model"
)

// ListReviews returns every review of a movie.
func (c *Client) ListReviews(ctx context.Context, movieID uint64) ([]model.Review, error) {
	var out []model.Review
	if err := c.getJSON(ctx, fmt.Sprintf("/movies/%d/reviews", movieID), "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMyReview returns the token owner's review of a movie, or nil when
// they have not written one.
func (c *Client) GetMyReview(ctx context.Context, movieID uint64, token string) (*model.Review, error) {
	var out model.Review
	err := c.getJSON(ctx, fmt.Sprintf("/movies/%d/reviews/me", movieID), token, &out)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReview posts the viewer's review; the API answers 201 on success.
func (c *Client) CreateReview(ctx context.Context, movieID uint64, in model.ReviewInput, token string) (int, error) {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/movies/%d/reviews", movieID), token, in)
}

// EditReview replaces the viewer's review; the API answers 200 on success.
func (c *Client) EditReview(ctx context.Context, movieID uint64, in model.ReviewInput, token string) (int, error) {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/movies/%d/reviews", movieID), token, in)
}

// DeleteReview removes the viewer's review; the API answers 200 on success.
func (c *Client) DeleteReview(ctx context.Context, movieID uint64, token string) (int, error) {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/movies/%d/reviews", movieID), token, nil)
}
