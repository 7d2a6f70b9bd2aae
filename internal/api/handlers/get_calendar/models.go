package get_calendar

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	getCalendar "github.com/m04kA/SMC-ArtisanBookingService/internal/usecase/get_calendar"
)

// DayResponse день месяца
type DayResponse struct {
	Date     string `json:"date"`
	Bookable bool   `json:"bookable"`
	Reason   string `json:"reason,omitempty"`
}

// CalendarResponse HTTP response model
// Weeks: недели с понедельника, пустая строка означает день соседнего месяца
type CalendarResponse struct {
	ProviderID uuid.UUID     `json:"providerId"`
	ServiceID  *uuid.UUID    `json:"serviceId,omitempty"`
	Month      string        `json:"month"`
	Days       []DayResponse `json:"days"`
	Weeks      [][]string    `json:"weeks"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	result := &CalendarResponse{
		ProviderID: resp.ProviderID,
		ServiceID:  resp.ServiceID,
		Month:      resp.Month.Format(domain.MonthFormat),
		Days:       make([]DayResponse, 0, len(resp.Days)),
		Weeks:      make([][]string, 0, len(resp.Weeks)),
	}
	for _, d := range resp.Days {
		result.Days = append(result.Days, DayResponse{
			Date:     d.Date.Format(domain.DateFormat),
			Bookable: d.Bookable,
			Reason:   string(d.Reason),
		})
	}
	for _, week := range resp.Weeks {
		row := make([]string, len(week))
		for i, day := range week {
			if day != nil {
				row[i] = day.Format(domain.DateFormat)
			}
		}
		result.Weeks = append(result.Weeks, row)
	}
	return result
}
