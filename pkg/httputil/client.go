package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nvaldez/steelbrain/pkg/logger"
	"github.com/nvaldez/steelbrain/pkg/redis"
)

// Client is an HTTP client wrapper with retry logic, rate limiting and
// logging. All outbound feed requests go through it.
type Client struct {
	httpClient   *http.Client
	logger       *logger.Logger
	retryConfig  RetryConfig
	localLimiter *rate.Limiter
	rateLimiter  *redis.RateLimiter
	rateLimitCfg *redis.RateLimitConfig
}

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Enabled      bool
}

// New creates a new HTTP client
func New(log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log,
		retryConfig: RetryConfig{
			MaxRetries:   3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     10 * time.Second,
			Enabled:      true,
		},
		// Local token bucket; active even when the shared Redis
		// limiter is disabled so a single process cannot hammer a feed.
		localLimiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// NewWithTimeout creates a client with custom timeout
func NewWithTimeout(log *logger.Logger, timeout time.Duration) *Client {
	client := New(log)
	client.httpClient.Timeout = timeout
	return client
}

// WithRetry configures retry behavior
func (c *Client) WithRetry(maxRetries int, initialDelay time.Duration) *Client {
	c.retryConfig.MaxRetries = maxRetries
	c.retryConfig.InitialDelay = initialDelay
	c.retryConfig.Enabled = true
	return c
}

// DisableRetry disables automatic retry
func (c *Client) DisableRetry() *Client {
	c.retryConfig.Enabled = false
	return c
}

// WithRateLimiter sets the shared Redis rate limiter for this client
func (c *Client) WithRateLimiter(limiter *redis.RateLimiter, cfg redis.RateLimitConfig) *Client {
	c.rateLimiter = limiter
	c.rateLimitCfg = &cfg
	return c
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	return c.do(req)
}

// GetJSON performs a GET request and decodes the JSON response into dest
func (c *Client) GetJSON(ctx context.Context, url string, dest interface{}) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode JSON from %s: %w", url, err)
	}

	return nil
}

// GetBody performs a GET request and returns the raw body
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// do executes the request with rate limiting and retry logic
func (c *Client) do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if err := c.localLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	if c.rateLimiter != nil && c.rateLimitCfg != nil {
		allowed, err := c.rateLimiter.Allow(ctx, *c.rateLimitCfg)
		if err != nil {
			c.logger.WithError(err).Warn("Shared rate limiter unavailable, proceeding")
		} else if !allowed {
			return nil, fmt.Errorf("rate limit exceeded for %s", c.rateLimitCfg.Key)
		}
	}

	var resp *http.Response
	var err error

	attempts := 1
	if c.retryConfig.Enabled {
		attempts = c.retryConfig.MaxRetries + 1
	}

	delay := c.retryConfig.InitialDelay
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}

			delay *= 2
			if delay > c.retryConfig.MaxDelay {
				delay = c.retryConfig.MaxDelay
			}
		}

		start := time.Now()
		resp, err = c.httpClient.Do(req)
		if err == nil && resp.StatusCode < http.StatusInternalServerError {
			c.logger.WithFields(map[string]interface{}{
				"method":   req.Method,
				"url":      req.URL.String(),
				"status":   resp.StatusCode,
				"duration": time.Since(start),
				"attempt":  attempt + 1,
			}).Debug("HTTP request completed")
			return resp, nil
		}

		if resp != nil {
			resp.Body.Close()
		}

		c.logger.WithFields(map[string]interface{}{
			"method":  req.Method,
			"url":     req.URL.String(),
			"attempt": attempt + 1,
			"error":   fmt.Sprintf("%v", err),
		}).Warn("HTTP request failed, will retry")
	}

	if err != nil {
		return nil, fmt.Errorf("request failed after %d attempts: %w", attempts, err)
	}
	return nil, fmt.Errorf("request failed after %d attempts: server error", attempts)
}
