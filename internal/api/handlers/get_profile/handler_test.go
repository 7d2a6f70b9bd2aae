package get_profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	providerRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/provider"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubProviders struct {
	byUser map[uuid.UUID]*domain.Provider
	err    error
}

func (s stubProviders) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Provider, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.byUser[userID]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	return p, nil
}

func serve(providers stubProviders, userID *uuid.UUID, profile middleware.Profile) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	if userID != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), *userID, profile))
	}
	rec := httptest.NewRecorder()
	NewHandler(providers, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_ClientProfile(t *testing.T) {
	userID := uuid.New()
	profile := middleware.Profile{Name: "Claire Martin", Email: "claire@example.fr", City: "Lyon"}

	rec := serve(stubProviders{}, &userID, profile)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, userID.String(), got["id"])
	assert.Equal(t, "Claire Martin", got["name"])
	assert.Equal(t, "Lyon", got["city"])
	assert.NotContains(t, got, "phone")
	assert.NotContains(t, got, "providerId")
}

func TestHandler_ProviderProfile(t *testing.T) {
	userID := uuid.New()
	provider := &domain.Provider{ID: uuid.New(), UserID: userID}

	rec := serve(stubProviders{byUser: map[uuid.UUID]*domain.Provider{userID: provider}}, &userID, middleware.Profile{})
	require.Equal(t, http.StatusOK, rec.Code)

	var got ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.ProviderID)
	assert.Equal(t, provider.ID, *got.ProviderID)
}

func TestHandler_Errors(t *testing.T) {
	rec := serve(stubProviders{}, nil, middleware.Profile{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	userID := uuid.New()
	rec = serve(stubProviders{err: assert.AnError}, &userID, middleware.Profile{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
