package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID        *uuid.UUID       // ID клиента, nil для анонимной записи
	ProviderID      uuid.UUID        // ID мастера
	ServiceID       *uuid.UUID       // Услуга из каталога, nil = свой мотив
	Date            time.Time        // Дата бронирования (без времени)
	Time            types.TimeString // Время начала (например, "10:00")
	DurationMinutes *int             // Длительность, по умолчанию из услуги или 60
	Address         string           // Адрес выезда, по умолчанию "A definir"
	Notes           *string          // Мотив и контакты клиента
	PriceHT         *decimal.Decimal // Цена без налога, по умолчанию из услуги
	PriceTTC        *decimal.Decimal // Цена с налогом, по умолчанию из услуги
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              uuid.UUID
	ProviderID      uuid.UUID
	ClientID        *uuid.UUID
	ServiceID       *uuid.UUID
	BookingDate     time.Time
	BookingTime     types.TimeString
	DurationMinutes int
	Status          string
	Address         string
	Notes           *string
	PriceHT         decimal.Decimal
	PriceTTC        decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
