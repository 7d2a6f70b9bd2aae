package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/availability"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// ProviderRepository интерфейс репозитория мастеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// SettingsRepository интерфейс репозитория настроек приёма записей
type SettingsRepository interface {
	GetOrDefault(ctx context.Context, providerID uuid.UUID) (*domain.ProviderSettings, error)
}

// ScheduleLoader загружает расписание мастера для движка доступности
type ScheduleLoader interface {
	LoadSchedule(ctx context.Context, providerID uuid.UUID, from time.Time) (*availability.Schedule, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
}

// Metrics метрики генерации слотов
type Metrics interface {
	ObserveSlots(total, available int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
