package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimitConfig describes a fixed-window rate limit
type RateLimitConfig struct {
	Key      string        // logical name of the limited resource
	Limit    int           // max requests per window
	Window   time.Duration // window length
}

// RateLimiter implements a fixed-window rate limiter backed by Redis.
// Shared across processes so scheduler jobs and API-triggered runs
// count against the same external-API quota.
type RateLimiter struct {
	client *Client
	prefix string
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, prefix string) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: prefix,
	}
}

// Allow reports whether a request is allowed under the limit. When
// Redis is disabled it always allows; callers combine it with a local
// limiter for that case.
func (r *RateLimiter) Allow(ctx context.Context, cfg RateLimitConfig) (bool, error) {
	if !r.client.Enabled() {
		return true, nil
	}

	window := time.Now().Unix() / int64(cfg.Window.Seconds())
	key := fmt.Sprintf("%s:ratelimit:%s:%d", r.prefix, cfg.Key, window)

	count, err := r.client.Redis().Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr failed: %w", err)
	}

	if count == 1 {
		// First hit in the window owns the expiry
		if err := r.client.Redis().Expire(ctx, key, cfg.Window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire failed: %w", err)
		}
	}

	return count <= int64(cfg.Limit), nil
}
