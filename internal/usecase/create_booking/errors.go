package create_booking

import "errors"

var (
	// ErrProviderNotFound возвращается, когда мастер не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена у мастера
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга снята с записи
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrDateNotBookable возвращается, когда на дату нельзя записаться (прошлое, выходной, отсутствие, ограничение услуги)
	ErrDateNotBookable = errors.New("create_booking: date is not bookable")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда запись не помещается в рабочее окно
	ErrInvalidTimeSlot = errors.New("create_booking: time is outside working hours")

	// ErrDayFull возвращается, когда достигнут дневной лимит записей мастера
	ErrDayFull = errors.New("create_booking: daily booking limit reached")

	// ErrSlotNotAvailable возвращается, когда время уже занято
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
