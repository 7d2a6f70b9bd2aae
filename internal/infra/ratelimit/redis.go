package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "artisan:ratelimit:"

// RedisLimiter лимитер с фиксированным окном, общий для всех инстансов сервиса
// На ключ и окно хранится один счётчик INCR с EXPIRE на длину окна
type RedisLimiter struct {
	client   redis.Cmdable
	requests int
	window   time.Duration
	now      func() time.Time
}

// NewRedisLimiter создает лимитер на requests запросов за window
func NewRedisLimiter(client redis.Cmdable, requests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		requests: requests,
		window:   window,
		now:      time.Now,
	}
}

// Allow увеличивает счётчик ключа в текущем окне и проверяет лимит
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := l.now().Truncate(l.window).Unix()
	redisKey := keyPrefix + key + ":" + strconv.FormatInt(windowStart, 10)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: Allow - key=%s: %v", ErrBackend, key, err)
	}

	return incr.Val() <= int64(l.requests), nil
}
