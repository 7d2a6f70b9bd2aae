package domain

import "github.com/m04kA/SMC-ArtisanBookingService/pkg/types"

// Slot время начала записи с признаком доступности
// Вычисляется на каждый запрос и не кэшируется
type Slot struct {
	Time      types.TimeString
	Available bool
}

// AvailableTimes returns start times of available slots only
func AvailableTimes(slots []Slot) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			out = append(out, s.Time)
		}
	}
	return out
}

// CountAvailable returns the number of available slots
func CountAvailable(slots []Slot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}
