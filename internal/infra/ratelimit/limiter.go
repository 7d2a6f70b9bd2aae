package ratelimit

import (
	"context"
)

// Limiter проверяет, можно ли пропустить ещё один запрос по ключу
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// FallbackLimiter сначала спрашивает основной лимитер, при его сбое переходит на запасной
type FallbackLimiter struct {
	primary  Limiter
	fallback Limiter
	logger   Logger
}

// NewFallbackLimiter создает лимитер с запасным вариантом
func NewFallbackLimiter(primary, fallback Limiter, logger Logger) *FallbackLimiter {
	return &FallbackLimiter{primary: primary, fallback: fallback, logger: logger}
}

func (l *FallbackLimiter) Allow(ctx context.Context, key string) (bool, error) {
	allowed, err := l.primary.Allow(ctx, key)
	if err == nil {
		return allowed, nil
	}

	l.logger.Warn("RateLimit: primary limiter failed, using fallback: %v", err)
	return l.fallback.Allow(ctx, key)
}
