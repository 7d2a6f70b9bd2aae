package settings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	providerRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/settings/models"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubProviders map[uuid.UUID]*domain.Provider

func (s stubProviders) GetByID(_ context.Context, id uuid.UUID) (*domain.Provider, error) {
	p, ok := s[id]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	return p, nil
}

type memorySettings struct {
	stored  map[uuid.UUID]domain.ProviderSettings
	upserts int
	err     error
}

func (m *memorySettings) GetOrDefault(_ context.Context, providerID uuid.UUID) (*domain.ProviderSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.stored[providerID]; ok {
		return &s, nil
	}
	return domain.DefaultProviderSettings(providerID), nil
}

func (m *memorySettings) Upsert(_ context.Context, s *domain.ProviderSettings) (*domain.ProviderSettings, error) {
	m.upserts++
	saved := *s
	saved.UpdatedAt = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	m.stored[s.ProviderID] = saved
	return &saved, nil
}

func newService() (*Service, *memorySettings, *domain.Provider) {
	provider := &domain.Provider{ID: uuid.New(), UserID: uuid.New()}
	repo := &memorySettings{stored: map[uuid.UUID]domain.ProviderSettings{}}
	return NewService(repo, stubProviders{provider.ID: provider}, nopLogger{}), repo, provider
}

func TestService_Get_Defaults(t *testing.T) {
	svc, _, provider := newService()

	resp, err := svc.Get(context.Background(), provider.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Nil(t, resp.UpdatedAt)
	assert.Equal(t, domain.DefaultMaxBookingsPerDay, resp.MaxBookingsPerDay)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)
	assert.False(t, resp.AutoAcceptBookings)
}

func TestService_Get_Errors(t *testing.T) {
	svc, repo, provider := newService()

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProviderNotFound)

	repo.err = assert.AnError
	_, err = svc.Get(context.Background(), provider.ID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Update_PartialFields(t *testing.T) {
	svc, repo, provider := newService()
	repo.stored[provider.ID] = domain.ProviderSettings{
		ProviderID:         provider.ID,
		AutoAcceptBookings: false,
		MaxBookingsPerDay:  4,
		AdvanceBookingDays: 30,
	}

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:             provider.UserID,
		ProviderID:         provider.ID,
		AutoAcceptBookings: ptr.Ptr(true),
	})
	require.NoError(t, err)

	assert.True(t, resp.AutoAcceptBookings)
	assert.Equal(t, 4, resp.MaxBookingsPerDay)
	assert.Equal(t, 30, resp.AdvanceBookingDays)
	assert.False(t, resp.IsDefault)
	require.NotNil(t, resp.UpdatedAt)
}

func TestService_Update_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpdateSettingsRequest
	}{
		{name: "negative max per day", req: models.UpdateSettingsRequest{MaxBookingsPerDay: ptr.Ptr(-1)}},
		{name: "max per day too high", req: models.UpdateSettingsRequest{MaxBookingsPerDay: ptr.Ptr(101)}},
		{name: "horizon too far", req: models.UpdateSettingsRequest{AdvanceBookingDays: ptr.Ptr(366)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, provider := newService()
			req := tt.req
			req.UserID = provider.UserID
			req.ProviderID = provider.ID

			_, err := svc.Update(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, repo.upserts)
		})
	}
}

func TestService_Update_AccessDenied(t *testing.T) {
	svc, repo, provider := newService()

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:            uuid.New(),
		ProviderID:        provider.ID,
		MaxBookingsPerDay: ptr.Ptr(3),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.upserts)
}
