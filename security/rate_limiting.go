package security

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a redis-backed fixed-window counter. A nil limiter or a
// limiter without redis allows everything; redis errors fail open so an
// outage never blocks report generation.
type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{redis: rdb}
}

// ErrRateLimited is returned when a key exceeds its window quota.
var ErrRateLimited = fmt.Errorf("rate limit exceeded")

// Allow consumes one unit from the key's current window.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) error {
	if r == nil || r.redis == nil || limit <= 0 {
		return nil
	}

	bucket := bucketKey(key, window)
	n, err := r.redis.Incr(ctx, bucket).Result()
	if err != nil {
		return nil
	}
	if n == 1 {
		r.redis.Expire(ctx, bucket, window)
	}
	if n > int64(limit) {
		return ErrRateLimited
	}
	return nil
}

func bucketKey(key string, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(window.Seconds()))
}
