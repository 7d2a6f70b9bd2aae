package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func newRedisLimiter(t *testing.T, requests int) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLimiter(client, requests, time.Minute)
	now := time.Date(2026, 10, 16, 12, 0, 10, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, mr
}

func TestRedisLimiter_Allow(t *testing.T) {
	l, mr := newRedisLimiter(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	// у другого ключа свой счётчик
	allowed, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed)

	key := keyPrefix + "10.0.0.1:" + "1792152000"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestRedisLimiter_NewWindow(t *testing.T) {
	l, _ := newRedisLimiter(t, 1)
	ctx := context.Background()

	allowed, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, allowed)

	next := time.Date(2026, 10, 16, 12, 1, 0, 0, time.UTC)
	l.now = func() time.Time { return next }

	allowed, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiter_BackendDown(t *testing.T) {
	l, mr := newRedisLimiter(t, 1)
	mr.Close()

	_, err := l.Allow(context.Background(), "ip")
	assert.ErrorIs(t, err, ErrBackend)
}

func TestMemoryLimiter_Allow(t *testing.T) {
	l := NewMemoryLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, _ := l.Allow(ctx, "a")
	assert.False(t, allowed)

	allowed, _ = l.Allow(ctx, "b")
	assert.True(t, allowed)
}

type failingLimiter struct{ calls int }

func (f *failingLimiter) Allow(context.Context, string) (bool, error) {
	f.calls++
	return false, ErrBackend
}

func TestFallbackLimiter(t *testing.T) {
	primary := &failingLimiter{}
	l := NewFallbackLimiter(primary, NewMemoryLimiter(1, time.Hour), nopLogger{})
	ctx := context.Background()

	allowed, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 2, primary.calls)
}
