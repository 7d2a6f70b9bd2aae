package domain

import (
	"fmt"
	"time"
)

// Weekday день недели в формате хранилища: 0 = воскресенье ... 6 = суббота
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeekdayOf возвращает день недели календарной даты
func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday())
}

// ParseWeekday разбирает номер дня недели 0..6
func ParseWeekday(v int) (Weekday, error) {
	w := Weekday(v)
	if !w.IsValid() {
		return 0, fmt.Errorf("day of week must be in 0..6, got %d", v)
	}
	return w, nil
}

// IsValid returns true for 0..6
func (w Weekday) IsValid() bool {
	return w >= Sunday && w <= Saturday
}

// MondayIndex позиция дня в сетке, начинающейся с понедельника (0 = понедельник ... 6 = воскресенье)
// Единственное место перевода между двумя нумерациями
func (w Weekday) MondayIndex() int {
	return (int(w) + 6) % 7
}

// WeekdayFromMondayIndex обратное преобразование к MondayIndex
func WeekdayFromMondayIndex(i int) Weekday {
	return Weekday((i + 1) % 7)
}

func (w Weekday) String() string {
	return time.Weekday(w).String()
}
