package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// Schedule всё, что известно о расписании мастера
type Schedule struct {
	Windows   []domain.WeeklyAvailabilityWindow
	Overrides domain.EligibilityOverrides
	Absences  []domain.Absence
}

// Reason причина, по которой дата недоступна
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonPastDate          Reason = "past_date"
	ReasonNoWindow          Reason = "no_window"
	ReasonDayOff            Reason = "day_off"
	ReasonAbsent            Reason = "absent"
	ReasonServiceNotOffered Reason = "service_not_offered"

	// Причины, которые определяются настройками мастера, а не расписанием
	ReasonBeyondHorizon Reason = "beyond_horizon"
	ReasonDayFull       Reason = "day_full"

	// Время занято другой записью
	ReasonSlotTaken Reason = "slot_taken"
)

// IsDateBookable проверяет, можно ли записаться на дату
// Сравнение с today идёт по календарным дням, сегодняшняя дата доступна в любое время суток
func IsDateBookable(date, today time.Time, serviceID *uuid.UUID, schedule Schedule) bool {
	return CheckDate(date, today, serviceID, schedule) == ReasonNone
}

// CheckDate то же, что IsDateBookable, но возвращает причину отказа
func CheckDate(date, today time.Time, serviceID *uuid.UUID, schedule Schedule) Reason {
	if domain.IsDateInPast(date, today) {
		return ReasonPastDate
	}

	day := domain.WeekdayOf(date)
	window, ok := domain.WindowForDay(schedule.Windows, day)
	if !ok {
		return ReasonNoWindow
	}
	if !window.IsAvailable {
		return ReasonDayOff
	}

	for i := range schedule.Absences {
		if schedule.Absences[i].Covers(date) {
			return ReasonAbsent
		}
	}

	if serviceID != nil && !schedule.Overrides.Allows(day, *serviceID) {
		return ReasonServiceNotOffered
	}

	return ReasonNone
}

// DaySlots слоты на дату: проверка даты, поиск окна, генерация и разметка занятости
// Для недоступной даты генератор не вызывается и возвращается пустой список
// bookings должны относиться к этой дате (см. FilterBookingsForDate)
func DaySlots(
	date, today time.Time,
	serviceID *uuid.UUID,
	durationMinutes int,
	schedule Schedule,
	bookings []domain.Booking,
) []domain.Slot {
	if !IsDateBookable(date, today, serviceID, schedule) {
		return []domain.Slot{}
	}

	window, _ := domain.WindowForDay(schedule.Windows, domain.WeekdayOf(date))
	slots := GenerateSlots(window, durationMinutes)
	return Annotate(slots, durationMinutes, bookings)
}
