package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/ptr"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubBookingRepo struct {
	bookings map[uuid.UUID]*domain.Booking
	list     []*domain.Booking
	filter   *domain.ProviderBookingsFilter
	status   *domain.BookingStatus
	writeErr error

	updated  []domain.BookingStatus
	canceled []*string
}

func (r *stubBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *stubBookingRepo) GetByClientID(_ context.Context, _ uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error) {
	r.status = status
	return r.list, nil
}

func (r *stubBookingRepo) GetByProviderWithFilter(_ context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	r.filter = &filter
	return r.list, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _, status domain.BookingStatus) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.updated = append(r.updated, status)
	return nil
}

func (r *stubBookingRepo) Cancel(_ context.Context, _ uuid.UUID, _ domain.BookingStatus, reason *string) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.canceled = append(r.canceled, reason)
	return nil
}

type stubProviderRepo struct {
	providers map[uuid.UUID]*domain.Provider
}

func (r *stubProviderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	return p, nil
}

type recordingPublisher struct {
	events []events.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.BookingEvent) error {
	p.events = append(p.events, e)
	return p.err
}

type fixture struct {
	svc       *Service
	bookings  *stubBookingRepo
	publisher *recordingPublisher

	provider *domain.Provider
	clientID uuid.UUID
	booking  *domain.Booking
}

func newFixture(status domain.BookingStatus) *fixture {
	provider := &domain.Provider{ID: uuid.New(), UserID: uuid.New(), DisplayName: "Atelier"}
	clientID := uuid.New()
	at := types.TimeString("10:00")
	booking := &domain.Booking{
		ID:              uuid.New(),
		ProviderID:      provider.ID,
		ClientID:        &clientID,
		BookingDate:     time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		BookingTime:     &at,
		DurationMinutes: 60,
		Status:          status,
		Address:         "12 rue des Lilas",
		Notes:           ptr.Ptr("Client: Jean"),
	}

	bookings := &stubBookingRepo{bookings: map[uuid.UUID]*domain.Booking{booking.ID: booking}}
	publisher := &recordingPublisher{}
	svc := NewService(
		bookings,
		&stubProviderRepo{providers: map[uuid.UUID]*domain.Provider{provider.ID: provider}},
		publisher,
		time.UTC,
		nopLogger{},
	)
	svc.timeProvider = fixedClock{now: time.Date(2026, 10, 16, 23, 30, 0, 0, time.UTC)}

	return &fixture{
		svc:       svc,
		bookings:  bookings,
		publisher: publisher,
		provider:  provider,
		clientID:  clientID,
		booking:   booking,
	}
}

func TestService_GetByID_Access(t *testing.T) {
	f := newFixture(domain.StatusPending)
	ctx := context.Background()

	resp, err := f.svc.GetByID(ctx, f.booking.ID, f.clientID)
	require.NoError(t, err)
	assert.Equal(t, f.booking.ID, resp.ID)
	assert.Equal(t, "12 rue des Lilas", resp.Address)

	_, err = f.svc.GetByID(ctx, f.booking.ID, f.provider.UserID)
	require.NoError(t, err)

	_, err = f.svc.GetByID(ctx, f.booking.ID, uuid.New())
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, uuid.New(), f.clientID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetClientBookings(t *testing.T) {
	f := newFixture(domain.StatusPending)
	f.bookings.list = []*domain.Booking{f.booking}

	resp, err := f.svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		UserID: f.clientID,
		Status: ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	require.NotNil(t, f.bookings.status)
	assert.Equal(t, domain.StatusPending, *f.bookings.status)

	_, err = f.svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		UserID: f.clientID,
		Status: ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetProviderBookings_DefaultsToToday(t *testing.T) {
	f := newFixture(domain.StatusPending)
	f.bookings.list = []*domain.Booking{f.booking}

	resp, err := f.svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{
		ProviderID: f.provider.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, f.bookings.filter)
	require.NotNil(t, f.bookings.filter.StartDate)
	assert.Equal(t, "2026-10-16", f.bookings.filter.StartDate.Format(domain.DateFormat))
	assert.Equal(t, domain.UpcomingStatuses, f.bookings.filter.Statuses)

	// без авторизации данные клиента скрыты
	require.Len(t, resp.Bookings, 1)
	assert.Nil(t, resp.Bookings[0].ClientID)
	assert.Empty(t, resp.Bookings[0].Address)
	assert.Nil(t, resp.Bookings[0].Notes)
	require.NotNil(t, resp.Bookings[0].BookingTime)
	assert.Equal(t, "10:00", *resp.Bookings[0].BookingTime)
}

func TestService_GetProviderBookings_TodayInConfiguredZone(t *testing.T) {
	f := newFixture(domain.StatusPending)
	f.svc.location = time.FixedZone("CEST", 2*60*60)

	_, err := f.svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{
		ProviderID: f.provider.ID,
	})
	require.NoError(t, err)

	// 23:30 UTC это уже следующий день в UTC+2
	assert.Equal(t, "2026-10-17", f.bookings.filter.StartDate.Format(domain.DateFormat))
}

func TestService_GetProviderBookings_OwnerSeesDetails(t *testing.T) {
	f := newFixture(domain.StatusAccepted)
	f.bookings.list = []*domain.Booking{f.booking}

	resp, err := f.svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{
		UserID:     &f.provider.UserID,
		ProviderID: f.provider.ID,
		Status:     ptr.Ptr("accepted"),
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.BookingStatus{domain.StatusAccepted}, f.bookings.filter.Statuses)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, &f.clientID, resp.Bookings[0].ClientID)
}

func TestService_GetProviderBookings_Errors(t *testing.T) {
	f := newFixture(domain.StatusPending)
	ctx := context.Background()

	_, err := f.svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{ProviderID: uuid.New()})
	assert.ErrorIs(t, err, ErrProviderNotFound)

	start := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	_, err = f.svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{
		ProviderID: f.provider.ID,
		StartDate:  &start,
		EndDate:    &end,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.BookingStatus
		user    func(f *fixture) uuid.UUID
		repoErr error
		wantErr error
	}{
		{name: "client cancels pending", status: domain.StatusPending, user: func(f *fixture) uuid.UUID { return f.clientID }},
		{name: "owner cancels accepted", status: domain.StatusAccepted, user: func(f *fixture) uuid.UUID { return f.provider.UserID }},
		{name: "stranger", status: domain.StatusPending, user: func(*fixture) uuid.UUID { return uuid.New() }, wantErr: ErrAccessDenied},
		{name: "already completed", status: domain.StatusCompleted, user: func(f *fixture) uuid.UUID { return f.clientID }, wantErr: ErrCannotCancel},
		{name: "concurrent change", status: domain.StatusPending, user: func(f *fixture) uuid.UUID { return f.clientID }, repoErr: bookingRepo.ErrStatusConflict, wantErr: ErrStatusConflict},
		{name: "storage failure", status: domain.StatusPending, user: func(f *fixture) uuid.UUID { return f.clientID }, repoErr: assert.AnError, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.status)
			f.bookings.writeErr = tt.repoErr

			err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{
				UserID:             tt.user(f),
				CancellationReason: ptr.Ptr("  empêchement  "),
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.publisher.events)
				return
			}
			require.NoError(t, err)
			require.Len(t, f.bookings.canceled, 1)
			assert.Equal(t, "empêchement", *f.bookings.canceled[0])

			require.Len(t, f.publisher.events, 1)
			event := f.publisher.events[0]
			assert.Equal(t, events.TypeBookingStatusChanged, event.Type)
			assert.Equal(t, string(domain.StatusCancelled), event.Status)
			assert.Equal(t, string(tt.status), event.PreviousStatus)
		})
	}
}

func TestService_Cancel_ReasonTooLong(t *testing.T) {
	f := newFixture(domain.StatusPending)
	long := make([]rune, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'é'
	}

	err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{
		UserID:             f.clientID,
		CancellationReason: ptr.Ptr(string(long)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel_PublishFailureIsIgnored(t *testing.T) {
	f := newFixture(domain.StatusPending)
	f.publisher.err = assert.AnError

	err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{UserID: f.clientID})
	require.NoError(t, err)
	require.Len(t, f.bookings.canceled, 1)
	assert.Nil(t, f.bookings.canceled[0])
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		owner   bool
		wantErr error
	}{
		{name: "accept pending", from: domain.StatusPending, to: "accepted", owner: true},
		{name: "reject pending", from: domain.StatusPending, to: "rejected", owner: true},
		{name: "complete accepted", from: domain.StatusAccepted, to: "completed", owner: true},
		{name: "complete pending", from: domain.StatusPending, to: "completed", owner: true, wantErr: ErrInvalidTransition},
		{name: "reopen cancelled", from: domain.StatusCancelled, to: "pending", owner: true, wantErr: ErrInvalidTransition},
		{name: "unknown status", from: domain.StatusPending, to: "done", owner: true, wantErr: ErrInvalidStatus},
		{name: "client cannot accept", from: domain.StatusPending, to: "accepted", owner: false, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.from)
			user := f.clientID
			if tt.owner {
				user = f.provider.UserID
			}

			resp, err := f.svc.UpdateStatus(context.Background(), f.booking.ID, &models.UpdateStatusRequest{
				UserID: user,
				Status: tt.to,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.bookings.updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			assert.Equal(t, []domain.BookingStatus{domain.BookingStatus(tt.to)}, f.bookings.updated)
			require.Len(t, f.publisher.events, 1)
			assert.Equal(t, string(tt.from), f.publisher.events[0].PreviousStatus)
		})
	}
}

func TestService_UpdateStatus_Conflict(t *testing.T) {
	f := newFixture(domain.StatusPending)
	f.bookings.writeErr = bookingRepo.ErrStatusConflict

	_, err := f.svc.UpdateStatus(context.Background(), f.booking.ID, &models.UpdateStatusRequest{
		UserID: f.provider.UserID,
		Status: "accepted",
	})
	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.Empty(t, f.publisher.events)
}
