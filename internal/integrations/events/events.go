package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// Типы событий, они же routing key
const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
)

// BookingEvent событие жизненного цикла записи
type BookingEvent struct {
	ID             uuid.UUID  `json:"id"`
	Type           string     `json:"type"`
	BookingID      uuid.UUID  `json:"bookingId"`
	ProviderID     uuid.UUID  `json:"providerId"`
	ClientID       *uuid.UUID `json:"clientId,omitempty"`
	ServiceID      *uuid.UUID `json:"serviceId,omitempty"`
	BookingDate    string     `json:"bookingDate"`
	BookingTime    string     `json:"bookingTime,omitempty"`
	Status         string     `json:"status"`
	PreviousStatus string     `json:"previousStatus,omitempty"`
	OccurredAt     time.Time  `json:"occurredAt"`
}

// BookingCreated событие о новой записи
func BookingCreated(b *domain.Booking, now time.Time) BookingEvent {
	return newBookingEvent(TypeBookingCreated, b, "", now)
}

// BookingStatusChanged событие о смене статуса записи
func BookingStatusChanged(b *domain.Booking, previous domain.BookingStatus, now time.Time) BookingEvent {
	return newBookingEvent(TypeBookingStatusChanged, b, previous, now)
}

func newBookingEvent(eventType string, b *domain.Booking, previous domain.BookingStatus, now time.Time) BookingEvent {
	e := BookingEvent{
		ID:             uuid.New(),
		Type:           eventType,
		BookingID:      b.ID,
		ProviderID:     b.ProviderID,
		ClientID:       b.ClientID,
		ServiceID:      b.ServiceID,
		BookingDate:    b.BookingDate.Format(domain.DateFormat),
		Status:         string(b.Status),
		PreviousStatus: string(previous),
		OccurredAt:     now.UTC(),
	}
	if b.BookingTime != nil {
		e.BookingTime = b.BookingTime.String()
	}
	return e
}

// NopPublisher публикатор, который ничего не отправляет (события выключены)
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event BookingEvent) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
