package absence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/ptr"
)

func TestRepository_GetByProvider(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	providerID := uuid.New()
	from := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 23, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(absenceColumns).
		AddRow(uuid.NewString(), providerID.String(), start, end, "Congés", nil, "manual", time.Now())

	mock.ExpectQuery("FROM absences WHERE provider_id = \\$1 AND end_date >= \\$2 ORDER BY start_date ASC").
		WithArgs(providerID.String(), "2026-10-16").
		WillReturnRows(rows)

	absences, err := NewRepository(db).GetByProvider(context.Background(), providerID, &from)
	require.NoError(t, err)
	require.Len(t, absences, 1)
	assert.Equal(t, start, absences[0].StartDate)
	assert.Equal(t, "Congés", ptr.Value(absences[0].Reason))
	assert.Nil(t, absences[0].Label)
	assert.True(t, absences[0].Covers(time.Date(2026, 10, 23, 15, 0, 0, 0, time.UTC)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO absences").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "2026-12-24", "2026-12-31", nil, "Fêtes", domain.DefaultAbsenceSource).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	a, err := NewRepository(db).Create(context.Background(), &domain.Absence{
		ProviderID: uuid.New(),
		StartDate:  time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Label:      ptr.Ptr("Fêtes"),
		Source:     domain.DefaultAbsenceSource,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, now, a.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM absences WHERE id = \\$1").WillReturnRows(sqlmock.NewRows(absenceColumns))

	_, err = NewRepository(db).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAbsenceNotFound)
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM absences WHERE id = \\$1").
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec("DELETE FROM absences").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrAbsenceNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
