package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/m04kA/SMC-ArtisanBookingService/internal/usecase/get_available_slots"
)

// SlotsCalculator строит сетку слотов мастера на одну дату
// Длительность берётся из параметра duration, затем из услуги, иначе по умолчанию
type SlotsCalculator interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
