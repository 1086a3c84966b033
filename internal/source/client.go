// Package source downloads the raw country and timezone documents.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/hightemp/isocountry/internal/logging"
)

const (
	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 30 * time.Second

	// MaxRetries for failed requests.
	MaxRetries = 3

	// BaseBackoff for exponential backoff.
	BaseBackoff = 1 * time.Second

	// MaxBackoff for exponential backoff.
	MaxBackoff = 30 * time.Second

	// UserAgent sent with every request.
	UserAgent = "isogen/1.0"
)

// StatusError is returned for non-200 responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

// retryable reports whether a request that failed with this status may
// succeed when repeated.
func (e *StatusError) retryable() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// Client is an HTTP client for the data providers.
type Client struct {
	httpClient  *http.Client
	baseBackoff time.Duration
	logger      *zap.Logger
}

// NewClient creates a new client.
func NewClient(logger *zap.Logger) *Client {
	return NewClientWithTimeout(DefaultTimeout, logger)
}

// NewClientWithTimeout creates a new client with custom timeout.
func NewClientWithTimeout(timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseBackoff: BaseBackoff,
		logger:      logging.OrNop(logger),
	}
}

// Get performs a GET request with retries and returns the response body.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	fullURL := u.String()

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.calculateBackoff(attempt)
			c.logger.Debug("retrying request",
				zap.String("host", u.Host),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, err := c.doRequest(ctx, fullURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		// Don't retry on context cancellation
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var se *StatusError
		if errors.As(err, &se) && !se.retryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("after %d retries: %w", MaxRetries, lastErr)
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.baseBackoff * time.Duration(1<<uint(attempt-1))
	if backoff > MaxBackoff {
		backoff = MaxBackoff
	}
	// Add jitter (0-25% of backoff)
	if quarter := int64(backoff / 4); quarter > 0 {
		backoff += time.Duration(rand.Int63n(quarter))
	}
	return backoff
}
