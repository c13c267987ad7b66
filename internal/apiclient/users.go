package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/cinema-dashboard/internal/model"
)

// ListUsers lists every account; admin token required.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var out []model.User
	if err := c.getJSON(ctx, "/users", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUser removes an account; super-admin token required.
func (c *Client) DeleteUser(ctx context.Context, id uint64, token string) (int, error) {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), token, nil)
}

// SetUserRoles replaces the role set of an account.
func (c *Client) SetUserRoles(ctx context.Context, id uint64, roles []model.Role, token string) (int, error) {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/users/%d/roles", id), token, map[string][]model.Role{"roles": roles})
}
