package get_calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/availability"
)

// Request модель запроса календаря на месяц
type Request struct {
	ProviderID uuid.UUID
	Month      string     // YYYY-MM
	ServiceID  *uuid.UUID // nil = свой мотив
}

// Response календарь месяца
type Response struct {
	ProviderID uuid.UUID
	ServiceID  *uuid.UUID
	Month      time.Time                  // первое число месяца
	Days       []availability.CalendarDay // дни месяца по порядку
	Weeks      [][]*time.Time             // сетка с понедельника, nil = день другого месяца
}
