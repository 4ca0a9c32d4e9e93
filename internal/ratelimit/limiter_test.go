package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	counts  map[string]int64
	expired map[string]time.Duration
	failing bool
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{
		counts:  make(map[string]int64),
		expired: make(map[string]time.Duration),
	}
}

func (f *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.failing {
		return redis.NewIntResult(0, errors.New("counter unavailable"))
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expired[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func TestLimiterAllowsWithinBudget(t *testing.T) {
	counter := newFakeCounter()
	limiter := NewLimiter(counter, 3, time.Minute, "ratelimit:login")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.True(t, limiter.Allow(ctx, "1.2.3.4"))
	}
	require.False(t, limiter.Allow(ctx, "1.2.3.4"))

	// a different caller has its own window
	require.True(t, limiter.Allow(ctx, "5.6.7.8"))
}

func TestLimiterSetsExpiryOnFirstAttempt(t *testing.T) {
	counter := newFakeCounter()
	limiter := NewLimiter(counter, 3, time.Minute, "ratelimit:login")

	require.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
	require.Equal(t, time.Minute, counter.expired["ratelimit:login:1.2.3.4"])
}

func TestLimiterFailsOpenWhenBackendDown(t *testing.T) {
	counter := newFakeCounter()
	counter.failing = true
	limiter := NewLimiter(counter, 1, time.Minute, "ratelimit:login")
	ctx := context.Background()

	require.True(t, limiter.Allow(ctx, "1.2.3.4"))
	require.True(t, limiter.Allow(ctx, "1.2.3.4"))
}

func TestLimiterDisabled(t *testing.T) {
	require.True(t, NewLimiter(nil, 5, time.Minute, "x").Allow(context.Background(), "k"))
	require.True(t, NewLimiter(newFakeCounter(), 0, time.Minute, "x").Allow(context.Background(), "k"))

	var nilLimiter *Limiter
	require.True(t, nilLimiter.Allow(context.Background(), "k"))
}
