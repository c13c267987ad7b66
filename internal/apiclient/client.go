// Package apiclient talks to the movie REST API.  Every call takes the
// caller's context so that an abandoned page request also abandons its
// upstream calls.  Mutations return the raw HTTP status and leave the
// interpretation to the caller; reads decode JSON and map unexpected
// statuses to errors.  There are no retries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotFound is returned by reads answered with 404.
var ErrNotFound = errors.New("apiclient: not found")

// ErrUnauthorized is returned by reads the API refused with 401 or 403,
// e.g. for a token revoked upstream.
var ErrUnauthorized = errors.New("apiclient: unauthorized")

// StatusError is returned by reads answered with any other unexpected status.
type StatusError struct {
	Method string
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: unexpected status %d", e.Method, e.Path, e.Status)
}

// Client is a thin typed wrapper over the API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL; timeout bounds each call.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	return resp, nil
}

// getJSON decodes a 200 response into dst.
func (c *Client) getJSON(ctx context.Context, path, token string, dst any) error {
	resp, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return &StatusError{Method: http.MethodGet, Path: path, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("apiclient: decode GET %s: %w", path, err)
	}
	return nil
}

// send performs a mutation and returns the status code.  The body is
// drained so the connection can be reused.
func (c *Client) send(ctx context.Context, method, path, token string, body any) (int, error) {
	resp, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// IsSuccess reports whether status is 2xx.
func IsSuccess(status int) bool { return status >= 200 && status < 300 }
