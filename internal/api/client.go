// Package api talks to the shop backend over JSON/HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/weblarek/larek/internal/errors"
	"github.com/weblarek/larek/internal/logging"
	"github.com/weblarek/larek/internal/shop"
)

// DefaultTimeout bounds a single request when none is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// RetryConfig controls retries of idempotent requests.
type RetryConfig struct {
	MaxRetries int
	Delay      time.Duration
}

// Client is a JSON client bound to a base URL.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	baseURL    *url.URL
	retry      RetryConfig
	logger     *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. The client passed to
// WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetry enables retries of GET requests that fail transiently.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    u,
		logger:     logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// GetJSON fetches path and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	var err error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return errors.NewTransportError(http.MethodGet, path, ctx.Err())
			case <-time.After(c.retry.Delay * time.Duration(attempt)):
			}
			c.logger.Debug("retrying request", "path", path, "attempt", attempt)
		}
		err = c.do(ctx, http.MethodGet, path, nil, out)
		if err == nil || !errors.IsRetryable(err) {
			break
		}
	}
	if err != nil {
		c.logger.Failure("request failed", err, "method", http.MethodGet, "path", path)
	}
	return err
}

// PostJSON sends body as JSON to path and decodes the response into out.
// POST requests are never retried.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	err := c.do(ctx, http.MethodPost, path, body, out)
	if err != nil {
		c.logger.Failure("request failed", err, "method", http.MethodPost, "path", path)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.NewTransportError(method, path, fmt.Errorf("marshaling request body: %w", err)).WithRetryable(false)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return errors.NewTransportError(method, path, fmt.Errorf("creating request: %w", err)).WithRetryable(false)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("no response", "method", method, "path", path, "error", err)
		return errors.NewTransportError(method, path, errors.Join(errors.ErrRequestFailed, err))
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		terr := errors.NewTransportError(method, path, errors.ErrBadStatus).WithStatus(resp.StatusCode)
		var body shop.ErrorResponse
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			terr = terr.WithServerMessage(body.Error)
		}
		return terr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewTransportError(method, path, errors.Join(errors.ErrDecode, err)).WithRetryable(false)
	}
	return nil
}

func (c *Client) resolve(path string) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimPrefix(path, "/")
	return u.String()
}
