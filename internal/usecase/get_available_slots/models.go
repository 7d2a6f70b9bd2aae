package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/availability"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	ProviderID      uuid.UUID  // ID мастера
	Date            time.Time  // Дата (без времени)
	ServiceID       *uuid.UUID // Услуга из каталога, nil = свой мотив
	DurationMinutes *int       // Явная длительность, иначе берётся из услуги
}

// Response модель ответа со слотами на дату
type Response struct {
	Date            time.Time
	ProviderID      uuid.UUID
	ServiceID       *uuid.UUID
	DurationMinutes int
	Bookable        bool                // Можно ли записаться на дату
	Reason          availability.Reason // Причина недоступности даты
	Slots           []domain.Slot       // Все слоты окна с признаком занятости
}
