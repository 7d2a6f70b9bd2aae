package get_calendar

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// parseRequest валидирует запрос и возвращает первое число месяца
func parseRequest(req *Request) (time.Time, error) {
	if req.ProviderID == uuid.Nil {
		return time.Time{}, fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}

	month, err := time.Parse(domain.MonthFormat, req.Month)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month must be in YYYY-MM format", ErrInvalidInput)
	}
	return month, nil
}

// validateService проверяет, что услугу можно выбрать у этого мастера
func validateService(service *domain.Service, providerID uuid.UUID) error {
	if service.ProviderID != providerID {
		return ErrServiceNotFound
	}
	if !service.Active {
		return ErrServiceInactive
	}
	return nil
}
