package provider

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	providerID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT id, user_id, display_name FROM providers WHERE user_id = \\$1").
		WithArgs(userID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "display_name"}).
			AddRow(providerID.String(), userID.String(), "Plomberie Martin"))

	p, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, providerID, p.ID)
	assert.True(t, p.IsOwnedBy(userID))

	mock.ExpectQuery("FROM providers WHERE id = \\$1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "display_name"}))

	_, err = repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProviderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
