package create_absence

import (
	"context"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateAbsence(ctx context.Context, req *models.CreateAbsenceRequest) (*models.AbsenceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
