package create_booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ArtisanBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid booking time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID      uuid.UUID        `json:"providerId"`
	ServiceID       *uuid.UUID       `json:"serviceId,omitempty"` // nil = свой мотив
	BookingDate     string           `json:"bookingDate"`         // "2025-10-15"
	BookingTime     string           `json:"bookingTime"`         // "10:00"
	DurationMinutes *int             `json:"durationMinutes,omitempty"`
	Address         string           `json:"address,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	PriceHT         *decimal.Decimal `json:"priceHt,omitempty"`
	PriceTTC        *decimal.Decimal `json:"priceTtc,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProviderID      uuid.UUID       `json:"providerId"`
	ClientID        *uuid.UUID      `json:"clientId,omitempty"`
	ServiceID       *uuid.UUID      `json:"serviceId,omitempty"`
	BookingDate     string          `json:"bookingDate"`
	BookingTime     string          `json:"bookingTime"`
	DurationMinutes int             `json:"durationMinutes"`
	Status          string          `json:"status"`
	Address         string          `json:"address"`
	Notes           *string         `json:"notes,omitempty"`
	PriceHT         decimal.Decimal `json:"priceHt"`
	PriceTTC        decimal.Decimal `json:"priceTtc"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID *uuid.UUID) (*createBooking.Request, error) {
	bookingDate, err := domain.ParseDate(r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.BookingTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		ClientID:        clientID,
		ProviderID:      r.ProviderID,
		ServiceID:       r.ServiceID,
		Date:            bookingDate,
		Time:            startTime,
		DurationMinutes: r.DurationMinutes,
		Address:         r.Address,
		Notes:           r.Notes,
		PriceHT:         r.PriceHT,
		PriceTTC:        r.PriceTTC,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ProviderID:      resp.ProviderID,
		ClientID:        resp.ClientID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		BookingTime:     resp.BookingTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Address:         resp.Address,
		Notes:           resp.Notes,
		PriceHT:         resp.PriceHT,
		PriceTTC:        resp.PriceTTC,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
