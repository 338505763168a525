// Package backend wraps the jewellery shop's REST API. Every response
// arrives in a {result, body, message} envelope; callers get the decoded
// body on success and a normalized error otherwise. Nothing is retried or
// cached.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrUnauthorized is returned when the backend rejects the bearer token.
// Callers treat it as a signal to clear the session and return to login.
var ErrUnauthorized = errors.New("backend rejected the session token")

// resultSuccess is the envelope result value for successful calls.
const resultSuccess = "SUCCESS"

// APIError is a backend-reported failure carrying the server's message for
// display.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend request failed with status %d", e.Status)
}

// Client talks to the remote backend.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a backend client. baseURL must not end with a slash.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Result  string          `json:"result"`
	Body    json.RawMessage `json:"body"`
	Message string          `json:"message"`
}

// do performs one backend call. token may be empty (login); in and out may
// be nil. On success the envelope body is decoded into out.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &APIError{Status: resp.StatusCode}
		}
		return fmt.Errorf("decoding response: %w", err)
	}

	if env.Result != resultSuccess || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Body) > 0 {
		if err := json.Unmarshal(env.Body, out); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}
	return nil
}

// get is a convenience wrapper for GET calls with query parameters.
func (c *Client) get(ctx context.Context, path, token string, query url.Values, out any) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, token, nil, out)
}
