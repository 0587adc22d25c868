// internal/infrastructure/database/redis/rate_limiter.go
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed window counter shared across instances
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter allows limit hits per window and key
func NewRateLimiter(client *Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: client.Redis, limit: limit, window: window}
}

// Allow counts a hit for key and reports whether it fits the window,
// along with the hits left.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	key = "rate_limit:" + key

	n, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return true, l.limit, err
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return true, l.limit, err
		}
	}

	count := int(n)
	if count > l.limit {
		return false, 0, nil
	}
	return true, l.limit - count, nil
}
