package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidCredentials is returned by Login for a 400/401 answer.
var ErrInvalidCredentials = errors.New("apiclient: invalid credentials")

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusBadRequest, http.StatusUnauthorized:
		return "", ErrInvalidCredentials
	default:
		return "", &StatusError{Method: http.MethodPost, Path: "/auth/login", Status: resp.StatusCode}
	}
	var body struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("apiclient: decode login: %w", err)
	}
	if body.AccessToken == "" {
		return "", errors.New("apiclient: login answered without token")
	}
	return body.AccessToken, nil
}
