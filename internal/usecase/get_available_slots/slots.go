package get_available_slots

import (
	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// resolveDuration длительность слота: явный параметр, затем длительность услуги, затем значение по умолчанию
func resolveDuration(req *Request, service *domain.Service) int {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes
	}
	if service != nil {
		return service.EffectiveDuration()
	}
	return domain.DefaultBookingDurationMinutes
}

// dereference копирует записи репозитория в значения для движка доступности
func dereference(bookings []*domain.Booking) []domain.Booking {
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil {
			out = append(out, *b)
		}
	}
	return out
}
