package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// MonthGrid сетка месяца по неделям, начиная с понедельника
// Ячейки до первого числа заполнены nil, последняя неделя дополняется nil до 7 дней
func MonthGrid(year int, month time.Month) [][]*time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]*time.Time, 0, 42)
	for i := 0; i < domain.WeekdayOf(first).MondayIndex(); i++ {
		cells = append(cells, nil)
	}
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		cells = append(cells, &day)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}

	weeks := make([][]*time.Time, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// CalendarDay день месяца с признаком доступности записи
type CalendarDay struct {
	Date     time.Time
	Bookable bool
	Reason   Reason
}

// MonthAvailability проверяет каждый день месяца предикатом доступности
func MonthAvailability(year int, month time.Month, today time.Time, serviceID *uuid.UUID, schedule Schedule) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]CalendarDay, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		reason := CheckDate(date, today, serviceID, schedule)
		days = append(days, CalendarDay{Date: date, Bookable: reason == ReasonNone, Reason: reason})
	}
	return days
}
