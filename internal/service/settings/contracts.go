package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек приёма записей
type SettingsRepository interface {
	GetOrDefault(ctx context.Context, providerID uuid.UUID) (*domain.ProviderSettings, error)
	Upsert(ctx context.Context, s *domain.ProviderSettings) (*domain.ProviderSettings, error)
}

// ProviderRepository интерфейс репозитория мастеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
