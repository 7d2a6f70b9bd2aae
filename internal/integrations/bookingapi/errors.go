package bookingapi

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса записи
	ErrInvalidResponse = errors.New("bookingapi client: invalid response")

	// ErrNotFound возвращается, когда мастер или ресурс не найден
	ErrNotFound = errors.New("bookingapi client: not found")

	// ErrUnauthorized возвращается, когда токен сессии отсутствует или отклонён
	ErrUnauthorized = errors.New("bookingapi client: unauthorized")
)
