package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек приёма записей
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	UserID             uuid.UUID `json:"-"`
	ProviderID         uuid.UUID `json:"-"`
	AutoAcceptBookings *bool     `json:"autoAcceptBookings,omitempty"`
	MaxBookingsPerDay  *int      `json:"maxBookingsPerDay,omitempty"`  // 0 = без ограничений
	AdvanceBookingDays *int      `json:"advanceBookingDays,omitempty"` // 0 = без ограничений
}

// ApplyTo применяет переданные поля к настройкам
func (r *UpdateSettingsRequest) ApplyTo(s *domain.ProviderSettings) {
	if r.AutoAcceptBookings != nil {
		s.AutoAcceptBookings = *r.AutoAcceptBookings
	}
	if r.MaxBookingsPerDay != nil {
		s.MaxBookingsPerDay = *r.MaxBookingsPerDay
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
}

// Response модели

// SettingsResponse ответ с настройками приёма записей
type SettingsResponse struct {
	ProviderID         uuid.UUID  `json:"providerId"`
	AutoAcceptBookings bool       `json:"autoAcceptBookings"`
	MaxBookingsPerDay  int        `json:"maxBookingsPerDay"`
	AdvanceBookingDays int        `json:"advanceBookingDays"`
	IsDefault          bool       `json:"isDefault"` // мастер ещё не сохранял настройки
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.ProviderSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		ProviderID:         s.ProviderID,
		AutoAcceptBookings: s.AutoAcceptBookings,
		MaxBookingsPerDay:  s.MaxBookingsPerDay,
		AdvanceBookingDays: s.AdvanceBookingDays,
		IsDefault:          s.UpdatedAt.IsZero(),
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
