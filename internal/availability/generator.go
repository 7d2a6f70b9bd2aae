// Package availability вычисляет свободные слоты мастера по недельному расписанию,
// ограничениям услуг, отсутствиям и существующим записям.
// Все функции чистые и не хранят состояние.
package availability

import (
	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

// GenerateSlots генерирует времена начала слотов внутри окна с шагом durationMinutes
// Слот включается, только если start+duration <= конец окна, хвост короче длительности отбрасывается
func GenerateSlots(window domain.WeeklyAvailabilityWindow, durationMinutes int) []types.TimeString {
	if !window.IsAvailable || durationMinutes <= 0 {
		return []types.TimeString{}
	}

	if window.StartTime.Validate() != nil || window.EndTime.Validate() != nil {
		return []types.TimeString{}
	}
	start, end := window.StartTime.Minutes(), window.EndTime.Minutes()

	slots := make([]types.TimeString, 0, max(0, (end-start)/durationMinutes))
	for m := start; m+durationMinutes <= end; m += durationMinutes {
		slots = append(slots, types.MustFromMinutes(m))
	}
	return slots
}
