package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             uuid.UUID `json:"-"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID uuid.UUID `json:"-"`
	Status string    `json:"status"`
}

// GetClientBookingsRequest запрос на получение записей клиента
type GetClientBookingsRequest struct {
	UserID uuid.UUID
	Status *string
}

// GetProviderBookingsRequest запрос на получение записей мастера
// Если UserID не владелец мастера, персональные данные клиентов скрываются
type GetProviderBookingsRequest struct {
	UserID     *uuid.UUID
	ProviderID uuid.UUID
	StartDate  *time.Time // по умолчанию сегодня
	EndDate    *time.Time
	Status     *string // по умолчанию все, кроме отменённых и отклонённых
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 uuid.UUID        `json:"id"`
	ProviderID         uuid.UUID        `json:"providerId"`
	ClientID           *uuid.UUID       `json:"clientId,omitempty"`
	ServiceID          *uuid.UUID       `json:"serviceId,omitempty"`
	BookingDate        string           `json:"bookingDate"`          // "2025-10-15"
	BookingTime        *string          `json:"bookingTime,omitempty"` // "10:00"
	DurationMinutes    int              `json:"durationMinutes"`
	Status             string           `json:"status"`
	Address            string           `json:"address,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
	PriceHT            *decimal.Decimal `json:"priceHt,omitempty"`
	PriceTTC           *decimal.Decimal `json:"priceTtc,omitempty"`
	CancellationReason *string          `json:"cancellationReason,omitempty"`
	CancelledAt        *string          `json:"cancelledAt,omitempty"` // ISO 8601 format
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := FromDomainBookingPublic(b)
	resp.ClientID = b.ClientID
	resp.Address = b.Address
	resp.Notes = b.Notes
	resp.PriceHT = &b.PriceHT
	resp.PriceTTC = &b.PriceTTC
	resp.CancellationReason = b.CancellationReason

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingPublic конвертирует запись без персональных данных клиента
// Остаются только поля, нужные для расчёта занятости
func FromDomainBookingPublic(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		ProviderID:      b.ProviderID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		DurationMinutes: b.EffectiveDuration(),
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.BookingTime != nil {
		t := b.BookingTime.String()
		resp.BookingTime = &t
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, public bool) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		var item *BookingResponse
		if public {
			item = FromDomainBookingPublic(booking)
		} else {
			item = FromDomainBooking(booking)
		}
		if item != nil {
			resp.Bookings = append(resp.Bookings, *item)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	return domain.ParseBookingStatus(status)
}
