package delete_absence

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/schedule"
)

const (
	msgInvalidAbsenceID = "некорректный ID периода отсутствия"
	msgAbsenceNotFound  = "период отсутствия не найден"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/absences/{absenceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	absenceID, err := handlers.PathUUID(r, "absenceId")
	if err != nil {
		h.logger.Warn("DELETE /absences/{id} - Invalid absence ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	if err := h.service.DeleteAbsence(r.Context(), userID, absenceID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrAbsenceNotFound):
			h.logger.Warn("DELETE /absences/{id} - Absence not found: absence_id=%s", absenceID)
			handlers.RespondNotFound(w, msgAbsenceNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /absences/{id} - Access denied: absence_id=%s, user_id=%s", absenceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /absences/{id} - Failed: absence_id=%s, error=%v", absenceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /absences/{id} - Absence deleted: absence_id=%s, user_id=%s", absenceID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
