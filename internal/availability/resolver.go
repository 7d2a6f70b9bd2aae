package availability

import (
	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

// Overlaps проверяет пересечение полуинтервалов [aStart, aStart+aDur) и [bStart, bStart+bDur)
// Касание границ пересечением не считается
func Overlaps(aStart, aDur, bStart, bDur int) bool {
	return aStart < bStart+bDur && aStart+aDur > bStart
}

// MarkUnavailable помечает все слоты занятыми (дневной лимит исчерпан)
func MarkUnavailable(slots []domain.Slot) []domain.Slot {
	for i := range slots {
		slots[i].Available = false
	}
	return slots
}

// Annotate помечает слоты, пересекающиеся хотя бы с одной записью, как недоступные
// Записи на дату не фильтруются: вызывающий передаёт только записи нужного дня
// Записи без времени пропускаются
func Annotate(slots []types.TimeString, durationMinutes int, bookings []domain.Booking) []domain.Slot {
	intervals := make([][2]int, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		if b.BookingTime == nil || b.BookingTime.Validate() != nil {
			continue
		}
		intervals = append(intervals, [2]int{b.BookingTime.Minutes(), b.EffectiveDuration()})
	}

	result := make([]domain.Slot, len(slots))
	for i, slot := range slots {
		result[i] = domain.Slot{Time: slot, Available: true}

		if slot.Validate() != nil {
			result[i].Available = false
			continue
		}
		start := slot.Minutes()

		for _, iv := range intervals {
			if Overlaps(start, durationMinutes, iv[0], iv[1]) {
				result[i].Available = false
				break
			}
		}
	}
	return result
}

// IsSlotFree проверяет, свободен ли конкретный слот среди записей дня
func IsSlotFree(slot types.TimeString, durationMinutes int, bookings []domain.Booking) bool {
	annotated := Annotate([]types.TimeString{slot}, durationMinutes, bookings)
	return len(annotated) == 1 && annotated[0].Available
}
