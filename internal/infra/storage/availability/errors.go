package availability

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно на день недели не найдено
	ErrWindowNotFound = errors.New("availability.repository: window not found")

	// ErrWindowExists возвращается при попытке создать второе окно на тот же день
	ErrWindowExists = errors.New("availability.repository: window already exists for this day")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
