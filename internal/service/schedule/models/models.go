package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// Request модели

// UpdateWindowRequest запрос на изменение часов работы в день недели
type UpdateWindowRequest struct {
	UserID     uuid.UUID `json:"-"`
	ProviderID uuid.UUID `json:"-"`
	DayOfWeek  int       `json:"-"`
	StartTime  string    `json:"startTime"` // "09:00"
	EndTime    string    `json:"endTime"`   // "17:00"
}

// ReplaceEligibilityRequest запрос на замену ограничений услуг
// Ключ: день недели (0 = воскресенье), значение: разрешённые услуги
type ReplaceEligibilityRequest struct {
	UserID     uuid.UUID           `json:"-"`
	ProviderID uuid.UUID           `json:"-"`
	Overrides  map[int][]uuid.UUID `json:"overrides"`
}

// CreateAbsenceRequest запрос на создание периода отсутствия
type CreateAbsenceRequest struct {
	UserID     uuid.UUID `json:"-"`
	ProviderID uuid.UUID `json:"-"`
	StartDate  string    `json:"startDate"` // "2025-10-15"
	EndDate    string    `json:"endDate"`
	Reason     *string   `json:"reason,omitempty"`
	Label      *string   `json:"label,omitempty"`
}

// Response модели

// WindowResponse окно работы на день недели
type WindowResponse struct {
	ID          uuid.UUID `json:"id"`
	DayOfWeek   int       `json:"dayOfWeek"`
	DayName     string    `json:"dayName"`
	IsAvailable bool      `json:"isAvailable"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
}

// AvailabilityResponse недельное расписание мастера
type AvailabilityResponse struct {
	ProviderID uuid.UUID        `json:"providerId"`
	Windows    []WindowResponse `json:"windows"`
}

// EligibilityResponse ограничения услуг по дням недели
type EligibilityResponse struct {
	ProviderID uuid.UUID           `json:"providerId"`
	Overrides  map[int][]uuid.UUID `json:"overrides"`
}

// AbsenceResponse период отсутствия
type AbsenceResponse struct {
	ID        uuid.UUID `json:"id"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Reason    *string   `json:"reason,omitempty"`
	Label     *string   `json:"label,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// AbsenceListResponse список периодов отсутствия
type AbsenceListResponse struct {
	Absences []AbsenceResponse `json:"absences"`
}

// ServiceResponse услуга мастера
type ServiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	PriceHT         decimal.Decimal `json:"priceHt"`
	PriceTTC        decimal.Decimal `json:"priceTtc"`
	Active          bool            `json:"active"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainWindow конвертирует окно в DTO
func FromDomainWindow(w *domain.WeeklyAvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}
	return &WindowResponse{
		ID:          w.ID,
		DayOfWeek:   int(w.DayOfWeek),
		DayName:     w.DayOfWeek.String(),
		IsAvailable: w.IsAvailable,
		StartTime:   w.StartTime.String(),
		EndTime:     w.EndTime.String(),
	}
}

// FromDomainWindows конвертирует окна мастера в DTO
func FromDomainWindows(providerID uuid.UUID, windows []domain.WeeklyAvailabilityWindow) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ProviderID: providerID,
		Windows:    make([]WindowResponse, 0, len(windows)),
	}
	for i := range windows {
		resp.Windows = append(resp.Windows, *FromDomainWindow(&windows[i]))
	}
	return resp
}

// FromDomainOverrides конвертирует ограничения в DTO, пустые дни не попадают в ответ
func FromDomainOverrides(providerID uuid.UUID, overrides domain.EligibilityOverrides) *EligibilityResponse {
	resp := &EligibilityResponse{
		ProviderID: providerID,
		Overrides:  make(map[int][]uuid.UUID, len(overrides)),
	}
	for day, ids := range overrides {
		if len(ids) == 0 {
			continue
		}
		sorted := append([]uuid.UUID(nil), ids...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })
		resp.Overrides[int(day)] = sorted
	}
	return resp
}

// ToDomainOverrides конвертирует DTO в ограничения
func ToDomainOverrides(overrides map[int][]uuid.UUID) domain.EligibilityOverrides {
	result := make(domain.EligibilityOverrides, len(overrides))
	for day, ids := range overrides {
		result[domain.Weekday(day)] = ids
	}
	return result.Normalize()
}

// FromDomainAbsence конвертирует период отсутствия в DTO
func FromDomainAbsence(a *domain.Absence) *AbsenceResponse {
	if a == nil {
		return nil
	}
	return &AbsenceResponse{
		ID:        a.ID,
		StartDate: a.StartDate.Format(domain.DateFormat),
		EndDate:   a.EndDate.Format(domain.DateFormat),
		Reason:    a.Reason,
		Label:     a.Label,
		Source:    a.Source,
		CreatedAt: a.CreatedAt,
	}
}

// FromDomainAbsences конвертирует список отсутствий в DTO
func FromDomainAbsences(absences []domain.Absence) *AbsenceListResponse {
	resp := &AbsenceListResponse{Absences: make([]AbsenceResponse, 0, len(absences))}
	for i := range absences {
		resp.Absences = append(resp.Absences, *FromDomainAbsence(&absences[i]))
	}
	return resp
}

// FromDomainServices конвертирует каталог услуг в DTO
func FromDomainServices(services []domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			DurationMinutes: s.EffectiveDuration(),
			PriceHT:         s.PriceHT,
			PriceTTC:        s.PriceTTC,
			Active:          s.Active,
		})
	}
	return resp
}
