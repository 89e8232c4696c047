package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cars-g/reporting-api/internal/core/ports"
)

// FixedWindowLimiter implements ports.RateLimiter with fixed windows.
// Key format: ratelimit:<key>:<window_start_unix>
type FixedWindowLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewFixedWindowLimiter allows limit requests per window for each key.
func NewFixedWindowLimiter(client *redis.Client, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: client, limit: limit, window: window, now: time.Now}
}

// Allow records one request for key and reports whether it fits the window.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (ports.RateDecision, error) {
	now := l.now()
	start := now.Truncate(l.window)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, start.Unix())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return ports.RateDecision{}, fmt.Errorf("rate limit: %w", err)
	}

	count := int(incr.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return ports.RateDecision{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		ResetIn:   start.Add(l.window).Sub(now),
	}, nil
}
