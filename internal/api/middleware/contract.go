package middleware

import (
	"context"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RateLimiter проверяет лимит запросов по ключу
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Metrics метрики HTTP слоя
type Metrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
	IncRateLimited(route string)
}
