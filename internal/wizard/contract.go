package wizard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// Catalog источник данных о мастере
type Catalog interface {
	GetAvailability(ctx context.Context, providerID uuid.UUID) ([]domain.WeeklyAvailabilityWindow, error)
	GetEligibilityOverrides(ctx context.Context, providerID uuid.UUID) (domain.EligibilityOverrides, error)
	GetAbsences(ctx context.Context, providerID uuid.UUID) ([]domain.Absence, error)
	GetBookings(ctx context.Context, providerID uuid.UUID) ([]domain.Booking, error)
	GetServices(ctx context.Context, providerID uuid.UUID) ([]domain.Service, error)
	GetSettings(ctx context.Context, providerID uuid.UUID) (*domain.ProviderSettings, error)
}

// BookingCreator создаёт запись
// Конфликт по времени должен возвращаться ошибкой, оборачивающей ErrConflict,
// исчерпанный дневной лимит мастера оборачивает ErrDayFull,
// ошибки валидации на стороне сервера оборачивают ErrValidation
type BookingCreator interface {
	CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error)
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

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
