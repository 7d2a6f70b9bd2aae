package toggle_window

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/schedule"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgInvalidDayOfWeek  = "некорректный день недели"
	msgProviderNotFound  = "мастер не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/availability/{dayOfWeek}/toggle
// Включает или выключает рабочий день. Отсутствующее окно создаётся с часами по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("POST /providers/{id}/availability/{day}/toggle - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	day, err := handlers.PathInt(r, "dayOfWeek")
	if err != nil {
		h.logger.Warn("POST /providers/{id}/availability/{day}/toggle - Invalid day of week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	result, err := h.service.ToggleWindow(r.Context(), userID, providerID, day)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/availability/{day}/toggle - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, schedule.ErrProviderNotFound):
			h.logger.Warn("POST /providers/{id}/availability/{day}/toggle - Provider not found: provider_id=%s", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /providers/{id}/availability/{day}/toggle - Access denied: provider_id=%s, user_id=%s",
				providerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /providers/{id}/availability/{day}/toggle - Failed: provider_id=%s, day=%d, error=%v",
				providerID, day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/availability/{day}/toggle - Window toggled: provider_id=%s, day=%d, available=%t",
		providerID, day, result.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, result)
}
