package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	memoryMaxKeys = 10000
	memoryKeyTTL  = 10 * time.Minute
)

// MemoryLimiter token bucket на ключ в памяти процесса
// Используется, когда Redis не настроен или недоступен
type MemoryLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

// NewMemoryLimiter создает лимитер на requests запросов за window с запасом burst = requests
func NewMemoryLimiter(requests int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](memoryMaxKeys, nil, memoryKeyTTL),
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    requests,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	return l.limiter(key).Allow(), nil
}

func (l *MemoryLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Add(key, limiter)
	}
	return limiter
}
