package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBlockingPolicy_Blocks(t *testing.T) {
	tests := []struct {
		policy BlockingPolicy
		status BookingStatus
		want   bool
	}{
		{BlockPendingAndAccepted, StatusPending, true},
		{BlockPendingAndAccepted, StatusAccepted, true},
		{BlockPendingAndAccepted, StatusCancelled, false},
		{BlockPendingAndAccepted, StatusRejected, false},
		{BlockAcceptedOnly, StatusPending, false},
		{BlockAcceptedOnly, StatusAccepted, true},
		{BlockAcceptedOnly, StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy)+"/"+string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Blocks(tt.status))
		})
	}
}

func TestParseBlockingPolicy(t *testing.T) {
	p, err := ParseBlockingPolicy("")
	assert.NoError(t, err)
	assert.Equal(t, BlockPendingAndAccepted, p)

	_, err = ParseBlockingPolicy("everything")
	assert.Error(t, err)
}

func TestBooking_CanTransitionTo(t *testing.T) {
	b := &Booking{Status: StatusPending}
	assert.True(t, b.CanTransitionTo(StatusAccepted))
	assert.True(t, b.CanTransitionTo(StatusRejected))
	assert.False(t, b.CanTransitionTo(StatusCompleted))

	b.Status = StatusAccepted
	assert.True(t, b.CanTransitionTo(StatusCompleted))
	assert.False(t, b.CanTransitionTo(StatusRejected))

	b.Status = StatusCancelled
	assert.False(t, b.CanTransitionTo(StatusAccepted))
}

func TestBooking_EffectiveDuration(t *testing.T) {
	assert.Equal(t, 60, (&Booking{}).EffectiveDuration())
	assert.Equal(t, 90, (&Booking{DurationMinutes: 90}).EffectiveDuration())
}

func TestEligibilityOverrides_Allows(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	o := EligibilityOverrides{Monday: {a}, Tuesday: {}}

	assert.True(t, o.Allows(Monday, a))
	assert.False(t, o.Allows(Monday, b))
	assert.True(t, o.Allows(Tuesday, b), "empty list means every service")
	assert.True(t, o.Allows(Friday, b), "absent day means every service")

	var nilOverrides EligibilityOverrides
	assert.True(t, nilOverrides.Allows(Monday, b))
}

func TestEligibilityOverrides_Normalize(t *testing.T) {
	a := uuid.New()
	o := EligibilityOverrides{Monday: {a, a}, Sunday: nil}.Normalize()

	assert.Len(t, o, 1)
	assert.Equal(t, []uuid.UUID{a}, o[Monday])
}

func TestAbsence_Covers(t *testing.T) {
	a := Absence{
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, a.Covers(time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)))
	assert.True(t, a.Covers(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, a.Covers(time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC)))
	assert.False(t, a.Covers(time.Date(2026, 7, 31, 23, 59, 0, 0, time.UTC)))
}

func TestProviderSettings(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)
	s := DefaultProviderSettings(uuid.New())

	assert.Equal(t, StatusPending, s.InitialStatus())
	assert.False(t, s.IsBeyondHorizon(now.AddDate(1, 0, 0), now))
	assert.True(t, s.IsDayFull(10))
	assert.False(t, s.IsDayFull(9))

	s.AutoAcceptBookings = true
	s.AdvanceBookingDays = 7
	s.MaxBookingsPerDay = 0
	assert.Equal(t, StatusAccepted, s.InitialStatus())
	assert.False(t, s.IsBeyondHorizon(now.AddDate(0, 0, 7), now))
	assert.True(t, s.IsBeyondHorizon(now.AddDate(0, 0, 8), now))
	assert.False(t, s.IsDayFull(1000))
}
