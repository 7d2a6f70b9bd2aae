package domain

import (
	"time"

	"github.com/google/uuid"
)

// Absence период отсутствия мастера, границы включительно
type Absence struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
	Label      *string
	Source     string
	CreatedAt  time.Time
}

// Covers проверяет, попадает ли календарная дата в период отсутствия
func (a *Absence) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(a.StartDate)) && !d.After(DateOnly(a.EndDate))
}
