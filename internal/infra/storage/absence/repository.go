package absence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/psqlbuilder"
)

var absenceColumns = []string{
	"id",
	"provider_id",
	"start_date",
	"end_date",
	"reason",
	"label",
	"source",
	"created_at",
}

// Repository репозиторий периодов отсутствия мастера
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отсутствий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProvider получает периоды отсутствия мастера
// Если from задан, возвращаются только периоды, заканчивающиеся не раньше from
func (r *Repository) GetByProvider(ctx context.Context, providerID uuid.UUID, from *time.Time) ([]domain.Absence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(absenceColumns...).
		From("absences").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("start_date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": from.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	absences := make([]domain.Absence, 0)
	for rows.Next() {
		a, err := scanAbsence(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByProvider - scan row: %v", ErrScanRow, err)
		}
		absences = append(absences, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - rows error: %v", ErrScanRow, err)
	}

	return absences, nil
}

// GetByID получает период отсутствия по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Absence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(absenceColumns...).
		From("absences").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAbsence(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAbsenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan absence: %v", ErrScanRow, err)
	}

	return a, nil
}

// Create создает период отсутствия
func (r *Repository) Create(ctx context.Context, a *domain.Absence) (*domain.Absence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("absences").
		Columns("id", "provider_id", "start_date", "end_date", "reason", "label", "source").
		Values(
			a.ID,
			a.ProviderID,
			a.StartDate.Format(domain.DateFormat),
			a.EndDate.Format(domain.DateFormat),
			a.Reason,
			a.Label,
			a.Source,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	a.CreatedAt = createdAt.Time

	return a, nil
}

// Delete удаляет период отсутствия
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("absences").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAbsenceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAbsence(row rowScanner) (*domain.Absence, error) {
	var a domain.Absence
	var start, end time.Time
	var createdAt sql.NullTime

	if err := row.Scan(
		&a.ID,
		&a.ProviderID,
		&start,
		&end,
		&a.Reason,
		&a.Label,
		&a.Source,
		&createdAt,
	); err != nil {
		return nil, err
	}

	a.StartDate = domain.DateOnly(start)
	a.EndDate = domain.DateOnly(end)
	a.CreatedAt = createdAt.Time
	return &a, nil
}
