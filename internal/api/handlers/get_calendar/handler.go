package get_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers"
	getCalendar "github.com/m04kA/SMC-ArtisanBookingService/internal/usecase/get_calendar"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgInvalidMonth      = "некорректный месяц, ожидается YYYY-MM"
	msgProviderNotFound  = "мастер не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgServiceInactive   = "услуга недоступна для записи"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/calendar
// Query params: month (required, YYYY-MM), serviceId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/calendar - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	serviceID, err := handlers.QueryUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/calendar - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	month := r.URL.Query().Get("month")
	result, err := h.useCase.Execute(r.Context(), &getCalendar.Request{
		ProviderID: providerID,
		Month:      month,
		ServiceID:  serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/calendar - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		case errors.Is(err, getCalendar.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/calendar - Provider not found: provider_id=%s", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getCalendar.ErrServiceNotFound):
			h.logger.Warn("GET /providers/{id}/calendar - Service not found: service_id=%v", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getCalendar.ErrServiceInactive):
			h.logger.Warn("GET /providers/{id}/calendar - Service inactive: service_id=%v", serviceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		default:
			h.logger.Error("GET /providers/{id}/calendar - Failed to build calendar: provider_id=%s, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/calendar - Calendar built: provider_id=%s, month=%s", providerID, month)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
