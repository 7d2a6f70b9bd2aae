package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service услуга мастера
type Service struct {
	ID              uuid.UUID
	ProviderID      uuid.UUID
	Name            string
	Description     *string
	DurationMinutes int
	PriceHT         decimal.Decimal
	PriceTTC        decimal.Decimal
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveDuration длительность услуги с подстановкой значения по умолчанию
func (s *Service) EffectiveDuration() int {
	if s.DurationMinutes <= 0 {
		return DefaultBookingDurationMinutes
	}
	return s.DurationMinutes
}
