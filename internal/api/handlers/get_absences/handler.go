package get_absences

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/schedule"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgProviderNotFound  = "мастер не найден"
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

// Handle GET /api/v1/providers/{providerId}/absences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/absences - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.GetAbsences(r.Context(), providerID)
	if err != nil {
		if errors.Is(err, schedule.ErrProviderNotFound) {
			h.logger.Warn("GET /providers/{id}/absences - Provider not found: provider_id=%s", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)
			return
		}
		h.logger.Error("GET /providers/{id}/absences - Failed: provider_id=%s, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/absences - Retrieved: provider_id=%s, count=%d", providerID, len(result.Absences))
	handlers.RespondJSON(w, http.StatusOK, result)
}
