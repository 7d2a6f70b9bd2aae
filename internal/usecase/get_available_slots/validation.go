package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID == uuid.Nil {
		return fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		d := *req.DurationMinutes
		if d < domain.MinBookingDurationMinutes || d > domain.MaxBookingDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinBookingDurationMinutes, domain.MaxBookingDurationMinutes)
		}
	}

	return nil
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
