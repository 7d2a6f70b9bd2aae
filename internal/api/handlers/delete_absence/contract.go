package delete_absence

import (
	"context"

	"github.com/google/uuid"
)

type ScheduleService interface {
	DeleteAbsence(ctx context.Context, userID, absenceID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
