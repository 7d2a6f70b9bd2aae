package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

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

	// Проверяем, что время начала указано
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != nil {
		d := *req.DurationMinutes
		if d < domain.MinBookingDurationMinutes || d > domain.MaxBookingDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinBookingDurationMinutes, domain.MaxBookingDurationMinutes)
		}
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Address)) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address must be at most %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.PriceHT != nil && req.PriceHT.IsNegative() {
		return fmt.Errorf("%w: priceHt must not be negative", ErrInvalidInput)
	}
	if req.PriceTTC != nil && req.PriceTTC.IsNegative() {
		return fmt.Errorf("%w: priceTtc must not be negative", ErrInvalidInput)
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

// validateFitsWindow проверяет, что запись целиком помещается в рабочее окно дня
func validateFitsWindow(window domain.WeeklyAvailabilityWindow, req *Request, duration int) error {
	start := req.Time.Minutes()
	if start < window.StartTime.Minutes() || start+duration > window.EndTime.Minutes() {
		return fmt.Errorf("%w: %s + %d min is outside %s-%s",
			ErrInvalidTimeSlot, req.Time, duration, window.StartTime, window.EndTime)
	}
	return nil
}
