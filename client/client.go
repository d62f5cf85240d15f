// Package client implements the HTTP client for the Smart Billing REST
// backend. A Client carries its own base URL and bearer token explicitly;
// there is no ambient shared state, and refreshing credentials means calling
// SetToken on the instance that owns them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the billing backend. Construct with New; the zero value is
// not usable.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
	l       *slog.Logger
}

// Option configures a Client. Use with New.
type Option func(c *Client)

// WithToken sets the initial bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithLogger sets the logger for request logging. If nil, a logger based on
// slog.DiscardHandler is used as default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		c.l = l
	}
}

// New returns a Client for the backend at baseURL, typically something like
// https://host/api. Trailing slashes on baseURL are tolerated.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		l:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token attached to subsequent requests. An
// empty token means unauthenticated requests (used after logout).
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is a request the backend rejected: any non-2xx response. Message
// carries the backend's own message when its error body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// IsAuthError reports whether err is an APIError caused by missing or
// rejected credentials.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// do runs one request against the backend. body (if non-nil) is marshaled as
// JSON; out (if non-nil) receives the decoded response body. Non-2xx
// responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	started := time.Now()
	res, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()
	c.l.Debug("request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", res.StatusCode),
		slog.Duration("elapsed", time.Since(started)),
		slog.String("requestID", req.Header.Get("X-Request-ID")),
	)
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		var errBody struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &errBody) == nil {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
