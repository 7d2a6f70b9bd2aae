package wizard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

// Step шаг мастера записи
type Step int

const (
	StepProfile Step = iota
	StepMotif
	StepCalendar
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepProfile:
		return "profile"
	case StepMotif:
		return "motif"
	case StepCalendar:
		return "calendar"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// UserProfile данные авторизованного клиента для предзаполнения контактов
type UserProfile struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	PostalCode string
	City       string
}

// Contact контактные данные в форме записи
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

// BookingRequest запрос на создание записи, собранный мастером
type BookingRequest struct {
	ProviderID      uuid.UUID
	ServiceID       *uuid.UUID
	Date            string // YYYY-MM-DD
	Time            types.TimeString
	DurationMinutes int
	Address         string
	Notes           string
	PriceHT         decimal.Decimal
	PriceTTC        decimal.Decimal
}

// BookingResult результат успешного создания записи
type BookingResult struct {
	ID          uuid.UUID
	Status      domain.BookingStatus
	BookingDate time.Time
	BookingTime types.TimeString
}
