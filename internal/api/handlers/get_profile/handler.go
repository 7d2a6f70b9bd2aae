package get_profile

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/api/middleware"
	providerRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/provider"
)

// ProfileResponse профиль текущего пользователя
// Используется мастером записи для предзаполнения контактов, providerId есть только у мастеров
type ProfileResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProviderID *uuid.UUID `json:"providerId,omitempty"`
	middleware.Profile
}

type Handler struct {
	providers ProviderRepository
	logger    Logger
}

func NewHandler(providers ProviderRepository, logger Logger) *Handler {
	return &Handler{
		providers: providers,
		logger:    logger,
	}
}

// Handle GET /api/v1/users/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	profile, _ := middleware.GetProfile(r.Context())
	resp := ProfileResponse{ID: userID, Profile: profile}

	provider, err := h.providers.GetByUserID(r.Context(), userID)
	switch {
	case err == nil:
		resp.ProviderID = &provider.ID
	case errors.Is(err, providerRepo.ErrProviderNotFound):
	default:
		h.logger.Error("GET /users/me - Failed to get provider: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/me - Profile retrieved: user_id=%s, provider=%t", userID, resp.ProviderID != nil)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
