package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/psqlbuilder"
)

// Repository репозиторий настроек приёма записей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProviderID получает настройки мастера
// Если настроек нет, возвращает ErrSettingsNotFound
func (r *Repository) GetByProviderID(ctx context.Context, providerID uuid.UUID) (*domain.ProviderSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"provider_id",
		"auto_accept_bookings",
		"max_bookings_per_day",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("provider_settings").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ProviderSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ProviderID,
		&s.AutoAcceptBookings,
		&s.MaxBookingsPerDay,
		&s.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetOrDefault получает настройки мастера или значения по умолчанию
func (r *Repository) GetOrDefault(ctx context.Context, providerID uuid.UUID) (*domain.ProviderSettings, error) {
	s, err := r.GetByProviderID(ctx, providerID)
	if err == ErrSettingsNotFound {
		return domain.DefaultProviderSettings(providerID), nil
	}
	return s, err
}

// Upsert создаёт или обновляет настройки мастера
func (r *Repository) Upsert(ctx context.Context, s *domain.ProviderSettings) (*domain.ProviderSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provider_settings").
		Columns(
			"provider_id",
			"auto_accept_bookings",
			"max_bookings_per_day",
			"advance_booking_days",
		).
		Values(
			s.ProviderID,
			s.AutoAcceptBookings,
			s.MaxBookingsPerDay,
			s.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (provider_id) DO UPDATE SET
			auto_accept_bookings = EXCLUDED.auto_accept_bookings,
			max_bookings_per_day = EXCLUDED.max_bookings_per_day,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
