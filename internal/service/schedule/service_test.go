package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	absenceRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/absence"
	windowRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/availability"
	providerRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/ptr"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type inlineTx struct {
	calls    int
	readOnly int
}

func (tx *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

func (tx *inlineTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.readOnly++
	return fn(ctx)
}

type stubProviders map[uuid.UUID]*domain.Provider

func (s stubProviders) GetByID(_ context.Context, id uuid.UUID) (*domain.Provider, error) {
	p, ok := s[id]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	return p, nil
}

type stubWindows struct {
	windows []domain.WeeklyAvailabilityWindow
	created []domain.WeeklyAvailabilityWindow
	toggled map[uuid.UUID]bool
	times   map[uuid.UUID][2]types.TimeString
}

func (s *stubWindows) GetByProvider(context.Context, uuid.UUID) ([]domain.WeeklyAvailabilityWindow, error) {
	return s.windows, nil
}

func (s *stubWindows) GetByProviderAndDay(_ context.Context, _ uuid.UUID, day domain.Weekday) (*domain.WeeklyAvailabilityWindow, error) {
	if w, ok := domain.WindowForDay(s.windows, day); ok {
		return &w, nil
	}
	return nil, windowRepo.ErrWindowNotFound
}

func (s *stubWindows) Create(_ context.Context, w *domain.WeeklyAvailabilityWindow) (*domain.WeeklyAvailabilityWindow, error) {
	created := *w
	created.ID = uuid.New()
	s.created = append(s.created, created)
	return &created, nil
}

func (s *stubWindows) SetAvailable(_ context.Context, id uuid.UUID, available bool) error {
	if s.toggled == nil {
		s.toggled = map[uuid.UUID]bool{}
	}
	s.toggled[id] = available
	return nil
}

func (s *stubWindows) UpdateTimes(_ context.Context, id uuid.UUID, start, end types.TimeString) error {
	if s.times == nil {
		s.times = map[uuid.UUID][2]types.TimeString{}
	}
	s.times[id] = [2]types.TimeString{start, end}
	return nil
}

type stubEligibility struct {
	overrides domain.EligibilityOverrides
	replaced  domain.EligibilityOverrides
	replaces  int
}

func (s *stubEligibility) GetByProvider(context.Context, uuid.UUID) (domain.EligibilityOverrides, error) {
	return s.overrides, nil
}

func (s *stubEligibility) Replace(_ context.Context, _ uuid.UUID, overrides domain.EligibilityOverrides) error {
	s.replaced = overrides
	s.replaces++
	return nil
}

type stubAbsences struct {
	absences map[uuid.UUID]*domain.Absence
	from     *time.Time
	created  []*domain.Absence
	deleted  []uuid.UUID
}

func (s *stubAbsences) GetByProvider(_ context.Context, _ uuid.UUID, from *time.Time) ([]domain.Absence, error) {
	s.from = from
	out := make([]domain.Absence, 0, len(s.absences))
	for _, a := range s.absences {
		out = append(out, *a)
	}
	return out, nil
}

func (s *stubAbsences) GetByID(_ context.Context, id uuid.UUID) (*domain.Absence, error) {
	a, ok := s.absences[id]
	if !ok {
		return nil, absenceRepo.ErrAbsenceNotFound
	}
	return a, nil
}

func (s *stubAbsences) Create(_ context.Context, a *domain.Absence) (*domain.Absence, error) {
	created := *a
	created.ID = uuid.New()
	created.CreatedAt = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	s.created = append(s.created, &created)
	return &created, nil
}

func (s *stubAbsences) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubServices struct {
	services   []domain.Service
	activeOnly *bool
}

func (s *stubServices) GetByProvider(_ context.Context, _ uuid.UUID, activeOnly bool) ([]domain.Service, error) {
	s.activeOnly = &activeOnly
	return s.services, nil
}

type fixture struct {
	svc         *Service
	windows     *stubWindows
	eligibility *stubEligibility
	absences    *stubAbsences
	services    *stubServices
	tx          *inlineTx

	provider *domain.Provider
}

func newFixture() *fixture {
	provider := &domain.Provider{ID: uuid.New(), UserID: uuid.New(), DisplayName: "Atelier"}
	f := &fixture{
		windows:     &stubWindows{},
		eligibility: &stubEligibility{},
		absences:    &stubAbsences{absences: map[uuid.UUID]*domain.Absence{}},
		services:    &stubServices{},
		tx:          &inlineTx{},
		provider:    provider,
	}
	f.svc = NewService(
		stubProviders{provider.ID: provider},
		f.windows,
		f.eligibility,
		f.absences,
		f.services,
		f.tx,
		nopLogger{},
	)
	return f
}

func TestService_LoadSchedule(t *testing.T) {
	f := newFixture()
	serviceID := uuid.New()
	f.windows.windows = []domain.WeeklyAvailabilityWindow{
		{ID: uuid.New(), ProviderID: f.provider.ID, DayOfWeek: domain.Monday, IsAvailable: true, StartTime: "09:00", EndTime: "12:00"},
	}
	f.eligibility.overrides = domain.EligibilityOverrides{domain.Monday: {serviceID}}

	schedule, err := f.svc.LoadSchedule(context.Background(), f.provider.ID, time.Date(2026, 10, 16, 18, 45, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, schedule.Windows, 1)
	assert.True(t, schedule.Overrides.Allows(domain.Monday, serviceID))
	assert.Equal(t, 1, f.tx.readOnly)

	require.NotNil(t, f.absences.from)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), *f.absences.from)
}

func TestService_Reads_ProviderNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	unknown := uuid.New()

	_, err := f.svc.GetAvailability(ctx, unknown)
	assert.ErrorIs(t, err, ErrProviderNotFound)
	_, err = f.svc.GetEligibility(ctx, unknown)
	assert.ErrorIs(t, err, ErrProviderNotFound)
	_, err = f.svc.GetAbsences(ctx, unknown)
	assert.ErrorIs(t, err, ErrProviderNotFound)
	_, err = f.svc.GetServices(ctx, unknown)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestService_GetServices_ActiveOnly(t *testing.T) {
	f := newFixture()
	f.services.services = []domain.Service{{ID: uuid.New(), ProviderID: f.provider.ID, Name: "Pose parquet", DurationMinutes: 120, Active: true}}

	resp, err := f.svc.GetServices(context.Background(), f.provider.ID)
	require.NoError(t, err)
	require.NotNil(t, f.services.activeOnly)
	assert.True(t, *f.services.activeOnly)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Pose parquet", resp.Services[0].Name)
}

func TestService_ToggleWindow_CreatesDefault(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.ToggleWindow(context.Background(), f.provider.UserID, f.provider.ID, int(domain.Wednesday))
	require.NoError(t, err)

	require.Len(t, f.windows.created, 1)
	assert.Equal(t, domain.DefaultWindowStart, f.windows.created[0].StartTime)
	assert.Equal(t, domain.DefaultWindowEnd, f.windows.created[0].EndTime)
	assert.True(t, resp.IsAvailable)
	assert.Equal(t, "08:00", resp.StartTime)
	assert.Equal(t, 1, f.tx.calls)
}

func TestService_ToggleWindow_FlipsExisting(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.windows.windows = []domain.WeeklyAvailabilityWindow{
		{ID: id, ProviderID: f.provider.ID, DayOfWeek: domain.Friday, IsAvailable: true, StartTime: "09:00", EndTime: "18:00"},
	}

	resp, err := f.svc.ToggleWindow(context.Background(), f.provider.UserID, f.provider.ID, int(domain.Friday))
	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
	assert.Equal(t, map[uuid.UUID]bool{id: false}, f.windows.toggled)
	assert.Empty(t, f.windows.created)
}

func TestService_ToggleWindow_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.ToggleWindow(ctx, f.provider.UserID, f.provider.ID, 7)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.ToggleWindow(ctx, uuid.New(), f.provider.ID, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	assert.Zero(t, f.tx.calls)
}

func TestService_UpdateWindow(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.windows.windows = []domain.WeeklyAvailabilityWindow{
		{ID: id, ProviderID: f.provider.ID, DayOfWeek: domain.Monday, IsAvailable: true, StartTime: "08:00", EndTime: "17:00"},
	}

	resp, err := f.svc.UpdateWindow(context.Background(), &models.UpdateWindowRequest{
		UserID:     f.provider.UserID,
		ProviderID: f.provider.ID,
		DayOfWeek:  int(domain.Monday),
		StartTime:  "09:30",
		EndTime:    "16:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:30", resp.StartTime)
	assert.Equal(t, "16:00", resp.EndTime)
	assert.Equal(t, [2]types.TimeString{"09:30", "16:00"}, f.windows.times[id])
}

func TestService_UpdateWindow_Validation(t *testing.T) {
	tests := []struct {
		name  string
		day   int
		start string
		end   string
	}{
		{name: "start equals end", day: 1, start: "10:00", end: "10:00"},
		{name: "start after end", day: 1, start: "18:00", end: "09:00"},
		{name: "bad time", day: 1, start: "9h", end: "17:00"},
		{name: "bad day", day: -1, start: "09:00", end: "17:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.UpdateWindow(context.Background(), &models.UpdateWindowRequest{
				UserID:     f.provider.UserID,
				ProviderID: f.provider.ID,
				DayOfWeek:  tt.day,
				StartTime:  tt.start,
				EndTime:    tt.end,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestService_ReplaceEligibility(t *testing.T) {
	f := newFixture()
	own := uuid.New()
	f.services.services = []domain.Service{{ID: own, ProviderID: f.provider.ID, Active: false}}

	resp, err := f.svc.ReplaceEligibility(context.Background(), &models.ReplaceEligibilityRequest{
		UserID:     f.provider.UserID,
		ProviderID: f.provider.ID,
		Overrides:  map[int][]uuid.UUID{1: {own, own}, 3: {}},
	})
	require.NoError(t, err)

	// неактивные услуги тоже принадлежат мастеру
	require.NotNil(t, f.services.activeOnly)
	assert.False(t, *f.services.activeOnly)

	assert.Equal(t, 1, f.eligibility.replaces)
	assert.Equal(t, []uuid.UUID{own}, f.eligibility.replaced[domain.Monday])
	assert.Equal(t, map[int][]uuid.UUID{1: {own}}, resp.Overrides)
}

func TestService_ReplaceEligibility_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.ReplaceEligibility(ctx, &models.ReplaceEligibilityRequest{
		UserID:     f.provider.UserID,
		ProviderID: f.provider.ID,
		Overrides:  map[int][]uuid.UUID{7: {uuid.New()}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.ReplaceEligibility(ctx, &models.ReplaceEligibilityRequest{
		UserID:     f.provider.UserID,
		ProviderID: f.provider.ID,
		Overrides:  map[int][]uuid.UUID{2: {uuid.New()}},
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.svc.ReplaceEligibility(ctx, &models.ReplaceEligibilityRequest{
		UserID:     uuid.New(),
		ProviderID: f.provider.ID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	assert.Zero(t, f.eligibility.replaces)
}

func TestService_CreateAbsence(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateAbsence(context.Background(), &models.CreateAbsenceRequest{
		UserID:     f.provider.UserID,
		ProviderID: f.provider.ID,
		StartDate:  "2026-12-24",
		EndDate:    "2026-12-26",
		Reason:     ptr.Ptr("  congés  "),
		Label:      ptr.Ptr("   "),
	})
	require.NoError(t, err)

	require.Len(t, f.absences.created, 1)
	created := f.absences.created[0]
	assert.Equal(t, domain.DefaultAbsenceSource, created.Source)
	assert.Equal(t, "congés", *created.Reason)
	assert.Nil(t, created.Label)
	assert.Equal(t, "2026-12-24", resp.StartDate)
	assert.Equal(t, "2026-12-26", resp.EndDate)
}

func TestService_CreateAbsence_Validation(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "end before start", start: "2026-12-26", end: "2026-12-24"},
		{name: "bad start", start: "24/12/2026", end: "2026-12-26"},
		{name: "bad end", start: "2026-12-24", end: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.CreateAbsence(context.Background(), &models.CreateAbsenceRequest{
				UserID:     f.provider.UserID,
				ProviderID: f.provider.ID,
				StartDate:  tt.start,
				EndDate:    tt.end,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.absences.created)
		})
	}
}

func TestService_DeleteAbsence(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.absences.absences[id] = &domain.Absence{ID: id, ProviderID: f.provider.ID}
	ctx := context.Background()

	err := f.svc.DeleteAbsence(ctx, uuid.New(), id)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = f.svc.DeleteAbsence(ctx, f.provider.UserID, uuid.New())
	assert.ErrorIs(t, err, ErrAbsenceNotFound)

	require.NoError(t, f.svc.DeleteAbsence(ctx, f.provider.UserID, id))
	assert.Equal(t, []uuid.UUID{id}, f.absences.deleted)
}
