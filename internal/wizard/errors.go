package wizard

import "errors"

var (
	// ErrValidation возвращается, когда данные шага не проходят проверку
	ErrValidation = errors.New("wizard: validation failed")

	// ErrConflict возвращается, когда выбранное время заняли раньше
	ErrConflict = errors.New("wizard: slot is no longer available")

	// ErrDayFull возвращается, когда мастер больше не принимает записи на выбранную дату
	ErrDayFull = errors.New("wizard: no more bookings accepted on this date")

	// ErrCollaborator возвращается при сбое источника данных или сервиса записи
	ErrCollaborator = errors.New("wizard: collaborator failure")

	// ErrInvalidTransition возвращается при операции, недопустимой на текущем шаге
	ErrInvalidTransition = errors.New("wizard: invalid transition")
)
