package eligibility

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

func TestRepository_GetByProvider(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	providerID := uuid.New()
	cut, paint := uuid.New(), uuid.New()

	rows := sqlmock.NewRows([]string{"day_of_week", "service_id"}).
		AddRow(1, cut.String()).
		AddRow(1, paint.String()).
		AddRow(4, paint.String())

	mock.ExpectQuery("SELECT day_of_week, service_id FROM availability_services WHERE provider_id = \\$1").
		WithArgs(providerID.String()).
		WillReturnRows(rows)

	overrides, err := NewRepository(db).GetByProvider(context.Background(), providerID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{cut, paint}, overrides[domain.Monday])
	assert.Equal(t, []uuid.UUID{paint}, overrides[domain.Thursday])
	_, ok := overrides[domain.Friday]
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Replace(t *testing.T) {
	providerID := uuid.New()
	serviceID := uuid.New()

	t.Run("delete then insert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM availability_services WHERE provider_id = \\$1").
			WithArgs(providerID.String()).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("INSERT INTO availability_services \\(provider_id,day_of_week,service_id\\) VALUES \\(\\$1,\\$2,\\$3\\),\\(\\$4,\\$5,\\$6\\)").
			WithArgs(providerID.String(), 1, serviceID.String(), providerID.String(), 5, serviceID.String()).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err = NewRepository(db).Replace(context.Background(), providerID, domain.EligibilityOverrides{
			domain.Friday: {serviceID},
			domain.Monday: {serviceID},
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty map only clears", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM availability_services").WillReturnResult(sqlmock.NewResult(0, 0))

		err = NewRepository(db).Replace(context.Background(), providerID, domain.EligibilityOverrides{
			domain.Tuesday: {},
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM availability_services").WillReturnError(assert.AnError)

		err = NewRepository(db).Replace(context.Background(), providerID, nil)
		assert.ErrorIs(t, err, ErrExecQuery)
	})
}
