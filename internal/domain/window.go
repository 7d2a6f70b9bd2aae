package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

// WeeklyAvailabilityWindow рабочее окно мастера на день недели
// На один день недели у мастера не больше одного окна
type WeeklyAvailabilityWindow struct {
	ID          uuid.UUID
	ProviderID  uuid.UUID
	DayOfWeek   Weekday
	IsAvailable bool
	StartTime   types.TimeString
	EndTime     types.TimeString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsValid returns true if the window starts strictly before it ends
func (w *WeeklyAvailabilityWindow) IsValid() bool {
	if w.StartTime.Validate() != nil || w.EndTime.Validate() != nil {
		return false
	}
	return w.StartTime.IsBefore(w.EndTime)
}

// WindowForDay ищет окно для дня недели
func WindowForDay(windows []WeeklyAvailabilityWindow, day Weekday) (WeeklyAvailabilityWindow, bool) {
	for _, w := range windows {
		if w.DayOfWeek == day {
			return w, true
		}
	}
	return WeeklyAvailabilityWindow{}, false
}
