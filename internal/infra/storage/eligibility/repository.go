package eligibility

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/psqlbuilder"
)

// Repository репозиторий ограничений услуг по дням недели
// Строка (provider_id, day_of_week, service_id) означает, что услуга разрешена в этот день
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория ограничений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProvider получает ограничения мастера
// Дни без строк в результат не попадают, что означает "все услуги"
func (r *Repository) GetByProvider(ctx context.Context, providerID uuid.UUID) (domain.EligibilityOverrides, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week", "service_id").
		From("availability_services").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("day_of_week ASC", "service_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make(domain.EligibilityOverrides)
	for rows.Next() {
		var day int
		var serviceID uuid.UUID
		if err := rows.Scan(&day, &serviceID); err != nil {
			return nil, fmt.Errorf("%w: GetByProvider - scan row: %v", ErrScanRow, err)
		}
		w := domain.Weekday(day)
		overrides[w] = append(overrides[w], serviceID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// Replace заменяет все ограничения мастера
// Вызывать внутри транзакции, чтобы удаление и вставка применились атомарно
func (r *Repository) Replace(ctx context.Context, providerID uuid.UUID, overrides domain.EligibilityOverrides) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_services").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - execute delete: %v", ErrExecQuery, err)
	}

	if len(overrides) == 0 {
		return nil
	}

	days := make([]int, 0, len(overrides))
	for day := range overrides {
		days = append(days, int(day))
	}
	sort.Ints(days)

	insert := psqlbuilder.Insert("availability_services").Columns("provider_id", "day_of_week", "service_id")
	rowsCount := 0
	for _, day := range days {
		for _, serviceID := range overrides[domain.Weekday(day)] {
			insert = insert.Values(providerID, day, serviceID)
			rowsCount++
		}
	}
	if rowsCount == 0 {
		return nil
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
