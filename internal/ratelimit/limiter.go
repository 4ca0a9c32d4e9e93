package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter is the subset of Redis commands the limiter needs. Satisfied by
// *redis.Client; tests substitute an in-memory implementation.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Limiter implements a fixed-window counter per caller key.
type Limiter struct {
	counter Counter
	limit   int
	window  time.Duration
	prefix  string
}

// NewLimiter builds a limiter. A nil counter or non-positive limit disables
// throttling (Allow always succeeds), which keeps login usable when Redis is
// down rather than locking everyone out.
func NewLimiter(counter Counter, limit int, window time.Duration, prefix string) *Limiter {
	return &Limiter{counter: counter, limit: limit, window: window, prefix: prefix}
}

// Allow records one attempt for key and reports whether it is within the
// window's budget. The first attempt in a window sets the key's expiry.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.counter == nil || l.limit <= 0 {
		return true
	}

	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)
	count, err := l.counter.Incr(ctx, redisKey).Result()
	if err != nil {
		// fail open when the counter backend is unavailable
		return true
	}
	if count == 1 {
		_ = l.counter.Expire(ctx, redisKey, l.window).Err()
	}
	return count <= int64(l.limit)
}
