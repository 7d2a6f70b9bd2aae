package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

var windowColumns = []string{
	"id",
	"provider_id",
	"day_of_week",
	"is_available",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий недельных окон работы мастера
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProvider получает окна мастера, упорядоченные по дню недели
func (r *Repository) GetByProvider(ctx context.Context, providerID uuid.UUID) ([]domain.WeeklyAvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.WeeklyAvailabilityWindow, 0, 7)
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByProvider - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// GetByProviderAndDay получает окно мастера на день недели
func (r *Repository) GetByProviderAndDay(ctx context.Context, providerID uuid.UUID, day domain.Weekday) (*domain.WeeklyAvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability").
		Where(squirrel.Eq{"provider_id": providerID, "day_of_week": int(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndDay - build select query: %v", ErrBuildQuery, err)
	}

	w, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndDay - scan window: %v", ErrScanRow, err)
	}

	return w, nil
}

// Create создает окно на день недели
func (r *Repository) Create(ctx context.Context, w *domain.WeeklyAvailabilityWindow) (*domain.WeeklyAvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("availability").
		Columns("id", "provider_id", "day_of_week", "is_available", "start_time", "end_time").
		Values(w.ID, w.ProviderID, int(w.DayOfWeek), w.IsAvailable, w.StartTime, w.EndTime).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrWindowExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return w, nil
}

// SetAvailable включает или выключает окно
func (r *Repository) SetAvailable(ctx context.Context, id uuid.UUID, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability").
		Set("is_available", available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailable - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "SetAvailable", query, args)
}

// UpdateTimes меняет начало и конец окна
func (r *Repository) UpdateTimes(ctx context.Context, id uuid.UUID, start, end types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability").
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTimes - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateTimes", query, args)
}

func (r *Repository) execOne(ctx context.Context, executor dbmetrics.DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.WeeklyAvailabilityWindow, error) {
	var w domain.WeeklyAvailabilityWindow
	var day int
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&w.ID,
		&w.ProviderID,
		&day,
		&w.IsAvailable,
		&w.StartTime,
		&w.EndTime,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	w.DayOfWeek = domain.Weekday(day)
	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time
	return &w, nil
}
