package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

func window(start, end types.TimeString) domain.WeeklyAvailabilityWindow {
	return domain.WeeklyAvailabilityWindow{
		DayOfWeek:   domain.Monday,
		IsAvailable: true,
		StartTime:   start,
		EndTime:     end,
	}
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		window   domain.WeeklyAvailabilityWindow
		duration int
		want     []types.TimeString
	}{
		{
			name:     "hour slots in three hour window",
			window:   window("09:00", "12:00"),
			duration: 60,
			want:     []types.TimeString{"09:00", "10:00", "11:00"},
		},
		{
			name:     "trailing partial slot dropped",
			window:   window("09:00", "11:30"),
			duration: 60,
			want:     []types.TimeString{"09:00", "10:00"},
		},
		{
			name:     "duration longer than window",
			window:   window("09:00", "09:45"),
			duration: 60,
			want:     []types.TimeString{},
		},
		{
			name:     "exact fit",
			window:   window("14:00", "15:30"),
			duration: 90,
			want:     []types.TimeString{"14:00"},
		},
		{
			name:     "window until midnight",
			window:   window("22:00", "24:00"),
			duration: 60,
			want:     []types.TimeString{"22:00", "23:00"},
		},
		{
			name:     "zero duration",
			window:   window("09:00", "12:00"),
			duration: 0,
			want:     []types.TimeString{},
		},
		{
			name: "unavailable window",
			window: domain.WeeklyAvailabilityWindow{
				IsAvailable: false,
				StartTime:   "09:00",
				EndTime:     "12:00",
			},
			duration: 30,
			want:     []types.TimeString{},
		},
		{
			name:     "malformed window",
			window:   window("9am", "12:00"),
			duration: 30,
			want:     []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlots(tt.window, tt.duration))
		})
	}
}

func TestGenerateSlots_SpacingAndBounds(t *testing.T) {
	w := window("08:00", "17:00")

	for _, duration := range []int{15, 25, 45, 60, 120} {
		slots := GenerateSlots(w, duration)
		for i, s := range slots {
			assert.LessOrEqual(t, s.Minutes()+duration, w.EndTime.Minutes())
			if i > 0 {
				assert.Equal(t, duration, s.Minutes()-slots[i-1].Minutes())
			}
		}
		assert.Equal(t, slots, GenerateSlots(w, duration), "generation must be deterministic")
	}
}
