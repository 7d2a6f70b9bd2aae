package bookingapi

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

// ErrorResponse модель ошибки от сервиса записи
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type windowDTO struct {
	ID          uuid.UUID `json:"id"`
	DayOfWeek   int       `json:"dayOfWeek"`
	IsAvailable bool      `json:"isAvailable"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
}

type availabilityDTO struct {
	ProviderID uuid.UUID   `json:"providerId"`
	Windows    []windowDTO `json:"windows"`
}

type eligibilityDTO struct {
	Overrides map[int][]uuid.UUID `json:"overrides"`
}

type absenceDTO struct {
	ID        uuid.UUID `json:"id"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Reason    *string   `json:"reason,omitempty"`
	Label     *string   `json:"label,omitempty"`
	Source    string    `json:"source"`
}

type absenceListDTO struct {
	Absences []absenceDTO `json:"absences"`
}

type serviceDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	PriceHT         decimal.Decimal `json:"priceHt"`
	PriceTTC        decimal.Decimal `json:"priceTtc"`
	Active          bool            `json:"active"`
}

type serviceListDTO struct {
	Services []serviceDTO `json:"services"`
}

type bookingDTO struct {
	ID              uuid.UUID  `json:"id"`
	ServiceID       *uuid.UUID `json:"serviceId,omitempty"`
	BookingDate     string     `json:"bookingDate"`
	BookingTime     *string    `json:"bookingTime,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
}

type bookingListDTO struct {
	Bookings []bookingDTO `json:"bookings"`
}

type createBookingDTO struct {
	ProviderID      uuid.UUID        `json:"providerId"`
	ServiceID       *uuid.UUID       `json:"serviceId,omitempty"`
	BookingDate     string           `json:"bookingDate"`
	BookingTime     string           `json:"bookingTime"`
	DurationMinutes int              `json:"durationMinutes,omitempty"`
	Address         string           `json:"address,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	PriceHT         *decimal.Decimal `json:"priceHt,omitempty"`
	PriceTTC        *decimal.Decimal `json:"priceTtc,omitempty"`
}

type createdBookingDTO struct {
	ID          uuid.UUID `json:"id"`
	BookingDate string    `json:"bookingDate"`
	BookingTime string    `json:"bookingTime"`
	Status      string    `json:"status"`
}

type settingsDTO struct {
	ProviderID         uuid.UUID  `json:"providerId"`
	AutoAcceptBookings bool       `json:"autoAcceptBookings"`
	MaxBookingsPerDay  int        `json:"maxBookingsPerDay"`
	AdvanceBookingDays int        `json:"advanceBookingDays"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

type profileDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	PostalCode string    `json:"postalCode"`
	City       string    `json:"city"`
}

func (d windowDTO) toDomain(providerID uuid.UUID) (domain.WeeklyAvailabilityWindow, error) {
	day, err := domain.ParseWeekday(d.DayOfWeek)
	if err != nil {
		return domain.WeeklyAvailabilityWindow{}, err
	}
	start, err := types.NewTimeStringFromString(d.StartTime)
	if err != nil {
		return domain.WeeklyAvailabilityWindow{}, fmt.Errorf("startTime: %w", err)
	}
	end, err := types.NewTimeStringFromString(d.EndTime)
	if err != nil {
		return domain.WeeklyAvailabilityWindow{}, fmt.Errorf("endTime: %w", err)
	}
	return domain.WeeklyAvailabilityWindow{
		ID:          d.ID,
		ProviderID:  providerID,
		DayOfWeek:   day,
		IsAvailable: d.IsAvailable,
		StartTime:   start,
		EndTime:     end,
	}, nil
}

func (d absenceDTO) toDomain(providerID uuid.UUID) (domain.Absence, error) {
	start, err := domain.ParseDate(d.StartDate)
	if err != nil {
		return domain.Absence{}, fmt.Errorf("startDate: %w", err)
	}
	end, err := domain.ParseDate(d.EndDate)
	if err != nil {
		return domain.Absence{}, fmt.Errorf("endDate: %w", err)
	}
	return domain.Absence{
		ID:         d.ID,
		ProviderID: providerID,
		StartDate:  start,
		EndDate:    end,
		Reason:     d.Reason,
		Label:      d.Label,
		Source:     d.Source,
	}, nil
}

func (d serviceDTO) toDomain(providerID uuid.UUID) domain.Service {
	return domain.Service{
		ID:              d.ID,
		ProviderID:      providerID,
		Name:            d.Name,
		Description:     d.Description,
		DurationMinutes: d.DurationMinutes,
		PriceHT:         d.PriceHT,
		PriceTTC:        d.PriceTTC,
		Active:          d.Active,
	}
}

// Записи без времени остаются в списке: они учитываются в дневном лимите, но не занимают слоты
func (d bookingDTO) toDomain(providerID uuid.UUID) (domain.Booking, error) {
	date, err := domain.ParseDate(d.BookingDate)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("bookingDate: %w", err)
	}
	status, err := domain.ParseBookingStatus(d.Status)
	if err != nil {
		return domain.Booking{}, err
	}

	var at *types.TimeString
	if d.BookingTime != nil {
		t, err := types.NewTimeStringFromString(*d.BookingTime)
		if err != nil {
			return domain.Booking{}, fmt.Errorf("bookingTime: %w", err)
		}
		at = &t
	}

	return domain.Booking{
		ID:              d.ID,
		ProviderID:      providerID,
		ServiceID:       d.ServiceID,
		BookingDate:     date,
		BookingTime:     at,
		DurationMinutes: d.DurationMinutes,
		Status:          status,
	}, nil
}

func (d settingsDTO) toDomain(providerID uuid.UUID) *domain.ProviderSettings {
	settings := &domain.ProviderSettings{
		ProviderID:         providerID,
		AutoAcceptBookings: d.AutoAcceptBookings,
		MaxBookingsPerDay:  d.MaxBookingsPerDay,
		AdvanceBookingDays: d.AdvanceBookingDays,
	}
	if d.UpdatedAt != nil {
		settings.UpdatedAt = *d.UpdatedAt
	}
	return settings
}

func parseDateTime(date, at string) (time.Time, types.TimeString, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return time.Time{}, "", err
	}
	t, err := types.NewTimeStringFromString(at)
	if err != nil {
		return time.Time{}, "", err
	}
	return d, t, nil
}
