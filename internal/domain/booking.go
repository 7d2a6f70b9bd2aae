package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAccepted  BookingStatus = "accepted"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
)

// ParseBookingStatus проверяет строку статуса
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case StatusPending, StatusAccepted, StatusCompleted, StatusCancelled, StatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

// Booking represents an appointment with a provider
type Booking struct {
	ID              uuid.UUID
	ProviderID      uuid.UUID
	ClientID        *uuid.UUID
	ServiceID       *uuid.UUID // nil = свой мотив без услуги из каталога
	BookingDate     time.Time
	BookingTime     *types.TimeString
	DurationMinutes int
	Status          BookingStatus
	Address         string
	Notes           *string
	PriceHT         decimal.Decimal
	PriceTTC        decimal.Decimal

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusRejected
}

// EffectiveDuration длительность записи, для неположительной подставляется значение по умолчанию
func (b *Booking) EffectiveDuration() int {
	if b.DurationMinutes <= 0 {
		return DefaultBookingDurationMinutes
	}
	return b.DurationMinutes
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

// CanTransitionTo проверяет допустимость смены статуса мастером
// pending -> accepted | rejected, accepted -> completed
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusAccepted || next == StatusRejected
	case StatusAccepted:
		return next == StatusCompleted
	default:
		return false
	}
}

// IsOwnedByClient returns true if the booking was made by the user
func (b *Booking) IsOwnedByClient(userID uuid.UUID) bool {
	return b.ClientID != nil && *b.ClientID == userID
}

// BlockingPolicy определяет, какие статусы занимают время в расписании
type BlockingPolicy string

const (
	// BlockPendingAndAccepted ожидающие и подтверждённые записи блокируют время
	BlockPendingAndAccepted BlockingPolicy = "pending_and_accepted"
	// BlockAcceptedOnly блокируют только подтверждённые записи
	BlockAcceptedOnly BlockingPolicy = "accepted_only"
)

// ParseBlockingPolicy разбирает политику, пустая строка означает значение по умолчанию
func ParseBlockingPolicy(s string) (BlockingPolicy, error) {
	switch p := BlockingPolicy(s); p {
	case "":
		return BlockPendingAndAccepted, nil
	case BlockPendingAndAccepted, BlockAcceptedOnly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown blocking policy %q", s)
	}
}

// Blocks проверяет, занимает ли запись с таким статусом время
func (p BlockingPolicy) Blocks(status BookingStatus) bool {
	switch status {
	case StatusAccepted, StatusCompleted:
		return true
	case StatusPending:
		return p != BlockAcceptedOnly
	default:
		return false
	}
}

// BlockingStatuses статусы, которые нужно выбирать из хранилища для политики
func (p BlockingPolicy) BlockingStatuses() []BookingStatus {
	if p == BlockAcceptedOnly {
		return []BookingStatus{StatusAccepted, StatusCompleted}
	}
	return ActiveStatuses
}

// ProviderBookingsFilter фильтр для получения записей мастера
type ProviderBookingsFilter struct {
	ProviderID uuid.UUID       // Обязательный параметр
	StartDate  *time.Time      // Начало периода (опционально)
	EndDate    *time.Time      // Конец периода (опционально)
	Statuses   []BookingStatus // Фильтр по статусам (пусто = все)
	ForUpdate  bool            // Блокировать строки (только внутри транзакции)
}
