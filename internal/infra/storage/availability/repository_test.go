package availability

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

func TestRepository_GetByProvider(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	providerID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(windowColumns).
		AddRow(uuid.NewString(), providerID.String(), 1, true, "09:00:00", "12:00:00", now, now).
		AddRow(uuid.NewString(), providerID.String(), 2, false, "08:00:00", "17:00:00", now, now)

	mock.ExpectQuery("SELECT (.+) FROM availability WHERE provider_id = \\$1 ORDER BY day_of_week ASC").
		WithArgs(providerID.String()).
		WillReturnRows(rows)

	windows, err := repo.GetByProvider(context.Background(), providerID)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, domain.Monday, windows[0].DayOfWeek)
	assert.Equal(t, "09:00", windows[0].StartTime.String())
	assert.Equal(t, "12:00", windows[0].EndTime.String())
	assert.False(t, windows[1].IsAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByProviderAndDay_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	mock.ExpectQuery("FROM availability").WillReturnRows(sqlmock.NewRows(windowColumns))

	_, err = repo.GetByProviderAndDay(context.Background(), uuid.New(), domain.Sunday)
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestRepository_Create(t *testing.T) {
	window := func() *domain.WeeklyAvailabilityWindow {
		return &domain.WeeklyAvailabilityWindow{
			ProviderID:  uuid.New(),
			DayOfWeek:   domain.Wednesday,
			IsAvailable: true,
			StartTime:   domain.DefaultWindowStart,
			EndTime:     domain.DefaultWindowEnd,
		}
	}

	t.Run("created", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Now()
		mock.ExpectQuery("INSERT INTO availability").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 3, true, "08:00", "17:00").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		w, err := NewRepository(db).Create(context.Background(), window())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, w.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate weekday", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("INSERT INTO availability").WillReturnError(&pq.Error{Code: "23505"})

		_, err = NewRepository(db).Create(context.Background(), window())
		assert.ErrorIs(t, err, ErrWindowExists)
	})
}

func TestRepository_SetAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	mock.ExpectExec("UPDATE availability SET is_available = \\$1").
		WithArgs(false, id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetAvailable(context.Background(), id, false))

	mock.ExpectExec("UPDATE availability").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetAvailable(context.Background(), id, true), ErrWindowNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateTimes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec("UPDATE availability SET start_time = \\$1, end_time = \\$2").
		WithArgs("10:00", "18:30", id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewRepository(db).UpdateTimes(context.Background(), id, types.MustFromMinutes(600), types.MustFromMinutes(18*60+30))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
