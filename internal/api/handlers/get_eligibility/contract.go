package get_eligibility

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetEligibility(ctx context.Context, providerID uuid.UUID) (*models.EligibilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
