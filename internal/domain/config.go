package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProviderSettings настройки приёма записей мастера
type ProviderSettings struct {
	ProviderID         uuid.UUID
	AutoAcceptBookings bool
	MaxBookingsPerDay  int // 0 = без ограничения
	AdvanceBookingDays int // 0 = без ограничения
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DefaultProviderSettings настройки для мастера, который их не задавал
func DefaultProviderSettings(providerID uuid.UUID) *ProviderSettings {
	return &ProviderSettings{
		ProviderID:         providerID,
		AutoAcceptBookings: DefaultAutoAcceptBookings,
		MaxBookingsPerDay:  DefaultMaxBookingsPerDay,
		AdvanceBookingDays: DefaultAdvanceBookingDays,
	}
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *ProviderSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// IsDayFull проверяет, достигнут ли дневной лимит записей
func (s *ProviderSettings) IsDayFull(bookingsCount int) bool {
	return s.MaxBookingsPerDay > 0 && bookingsCount >= s.MaxBookingsPerDay
}

// InitialStatus статус новой записи с учётом автоподтверждения
func (s *ProviderSettings) InitialStatus() BookingStatus {
	if s.AutoAcceptBookings {
		return StatusAccepted
	}
	return StatusPending
}

// IsBeyondHorizon проверяет, что дата дальше разрешённого горизонта записи
func (s *ProviderSettings) IsBeyondHorizon(date, now time.Time) bool {
	if !s.HasAdvanceBookingLimit() {
		return false
	}
	maxDate := DateOnly(now).AddDate(0, 0, s.AdvanceBookingDays)
	return DateOnly(date).After(maxDate)
}
