package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

// ProviderRepository интерфейс репозитория мастеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error)
}

// WindowRepository интерфейс репозитория недельных окон
type WindowRepository interface {
	GetByProvider(ctx context.Context, providerID uuid.UUID) ([]domain.WeeklyAvailabilityWindow, error)
	GetByProviderAndDay(ctx context.Context, providerID uuid.UUID, day domain.Weekday) (*domain.WeeklyAvailabilityWindow, error)
	Create(ctx context.Context, w *domain.WeeklyAvailabilityWindow) (*domain.WeeklyAvailabilityWindow, error)
	SetAvailable(ctx context.Context, id uuid.UUID, available bool) error
	UpdateTimes(ctx context.Context, id uuid.UUID, start, end types.TimeString) error
}

// EligibilityRepository интерфейс репозитория ограничений услуг по дням
type EligibilityRepository interface {
	GetByProvider(ctx context.Context, providerID uuid.UUID) (domain.EligibilityOverrides, error)
	Replace(ctx context.Context, providerID uuid.UUID, overrides domain.EligibilityOverrides) error
}

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	GetByProvider(ctx context.Context, providerID uuid.UUID, from *time.Time) ([]domain.Absence, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Absence, error)
	Create(ctx context.Context, a *domain.Absence) (*domain.Absence, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByProvider(ctx context.Context, providerID uuid.UUID, activeOnly bool) ([]domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
