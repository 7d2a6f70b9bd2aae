package create_absence

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/schedule/models"
)

const (
	msgInvalidProviderID  = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgProviderNotFound   = "мастер не найден"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/providers/{providerId}/absences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("POST /providers/{id}/absences - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req models.CreateAbsenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/absences - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.ProviderID = providerID

	result, err := h.service.CreateAbsence(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/absences - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, schedule.ErrProviderNotFound):
			h.logger.Warn("POST /providers/{id}/absences - Provider not found: provider_id=%s", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /providers/{id}/absences - Access denied: provider_id=%s, user_id=%s", providerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /providers/{id}/absences - Failed: provider_id=%s, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/absences - Absence created: provider_id=%s, absence_id=%s, %s..%s",
		providerID, result.ID, result.StartDate, result.EndDate)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
