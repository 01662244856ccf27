// Package apiclient is the HTTP transport for the platform's REST API. It
// attaches credentials, encodes JSON bodies and unwraps the
// {success, message, ...payload} envelope every endpoint answers with.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hairizuanbinnoorazman/bizadmin/logger"
)

var (
	// ErrUnauthorized is matched by APIErrors carrying HTTP 401. The credential
	// needs re-verification; it is not proof the user signed out.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is matched by APIErrors carrying HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrMalformedResponse is returned when a response body is not the expected JSON.
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError represents a failed call: an HTTP error status or success=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrUnauthorized and ErrNotFound.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Envelope is the part of every response body the transport inspects.
type Envelope struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Client is an HTTP client for the platform API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.logger = log }
}

// New creates a client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Get issues a GET and decodes the response envelope into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		// The backend reads either header depending on the route.
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("accesstoken", c.token)
	}

	c.logger.Debug(ctx, "api request", map[string]interface{}{
		"method": method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug(ctx, "api response", map[string]interface{}{
		"method": method,
		"url":    req.URL.String(),
		"status": resp.StatusCode,
		"bytes":  len(data),
	})

	return decode(resp.StatusCode, data, out)
}

func decode(status int, data []byte, out interface{}) error {
	var env Envelope
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &env); err != nil {
			if status >= http.StatusBadRequest {
				return &APIError{StatusCode: status, Message: strings.TrimSpace(string(data))}
			}
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	if status >= http.StatusBadRequest || (env.Success != nil && !*env.Success) {
		return &APIError{StatusCode: status, Message: env.message(status)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func (e Envelope) message(status int) string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Error != "":
		return e.Error
	}
	return http.StatusText(status)
}
