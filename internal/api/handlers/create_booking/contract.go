package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-ArtisanBookingService/internal/usecase/create_booking"
)

// BookingCreator проверяет дату и время по расписанию мастера и сохраняет запись
// Занятое время возвращается как ErrSlotNotAvailable, исчерпанный лимит дня как ErrDayFull
type BookingCreator interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Logger логирует отказы в записи и созданные записи
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
