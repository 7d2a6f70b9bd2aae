package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ArtisanBookingService/internal/usecase/get_available_slots"
)

// SlotResponse слот с признаком доступности
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProviderID      uuid.UUID      `json:"providerId"`
	ServiceID       *uuid.UUID     `json:"serviceId,omitempty"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	Bookable        bool           `json:"bookable"`
	Reason          string         `json:"reason,omitempty"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	result := &AvailableSlotsResponse{
		ProviderID:      resp.ProviderID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Bookable:        resp.Bookable,
		Reason:          string(resp.Reason),
		Slots:           make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{Time: s.Time.String(), Available: s.Available})
	}
	return result
}
