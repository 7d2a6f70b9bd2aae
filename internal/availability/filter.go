package availability

import (
	"time"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// FilterBookingsForDate оставляет записи указанной даты, которые блокируют время по политике
func FilterBookingsForDate(bookings []domain.Booking, date time.Time, policy domain.BlockingPolicy) []domain.Booking {
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !domain.IsSameDay(b.BookingDate, date) {
			continue
		}
		if !policy.Blocks(b.Status) {
			continue
		}
		out = append(out, b)
	}
	return out
}
