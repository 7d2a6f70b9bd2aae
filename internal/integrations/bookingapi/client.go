package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/availability"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/wizard"
)

const apiPrefix = "/api/v1"

// Client клиент HTTP API сервиса записи
// Реализует wizard.Catalog и wizard.BookingCreator
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
// token - токен сессии клиента, пустая строка для анонимной записи
func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetAvailability получает недельное расписание мастера
func (c *Client) GetAvailability(ctx context.Context, providerID uuid.UUID) ([]domain.WeeklyAvailabilityWindow, error) {
	var dto availabilityDTO
	if err := c.get(ctx, providerPath(providerID, "availability"), &dto); err != nil {
		return nil, err
	}

	windows := make([]domain.WeeklyAvailabilityWindow, 0, len(dto.Windows))
	for _, w := range dto.Windows {
		window, err := w.toDomain(providerID)
		if err != nil {
			return nil, fmt.Errorf("%w: window %s: %v", ErrInvalidResponse, w.ID, err)
		}
		windows = append(windows, window)
	}
	return windows, nil
}

// GetEligibilityOverrides получает ограничения услуг по дням недели
func (c *Client) GetEligibilityOverrides(ctx context.Context, providerID uuid.UUID) (domain.EligibilityOverrides, error) {
	var dto eligibilityDTO
	if err := c.get(ctx, providerPath(providerID, "eligibility"), &dto); err != nil {
		return nil, err
	}

	overrides := make(domain.EligibilityOverrides, len(dto.Overrides))
	for day, ids := range dto.Overrides {
		weekday, err := domain.ParseWeekday(day)
		if err != nil {
			return nil, fmt.Errorf("%w: overrides: %v", ErrInvalidResponse, err)
		}
		overrides[weekday] = ids
	}
	return overrides.Normalize(), nil
}

// GetAbsences получает периоды отсутствия мастера
func (c *Client) GetAbsences(ctx context.Context, providerID uuid.UUID) ([]domain.Absence, error) {
	var dto absenceListDTO
	if err := c.get(ctx, providerPath(providerID, "absences"), &dto); err != nil {
		return nil, err
	}

	absences := make([]domain.Absence, 0, len(dto.Absences))
	for _, a := range dto.Absences {
		absence, err := a.toDomain(providerID)
		if err != nil {
			return nil, fmt.Errorf("%w: absence %s: %v", ErrInvalidResponse, a.ID, err)
		}
		absences = append(absences, absence)
	}
	return absences, nil
}

// GetBookings получает предстоящие записи мастера начиная с сегодняшнего дня
func (c *Client) GetBookings(ctx context.Context, providerID uuid.UUID) ([]domain.Booking, error) {
	var dto bookingListDTO
	if err := c.get(ctx, providerPath(providerID, "bookings"), &dto); err != nil {
		return nil, err
	}

	bookings := make([]domain.Booking, 0, len(dto.Bookings))
	for _, b := range dto.Bookings {
		booking, err := b.toDomain(providerID)
		if err != nil {
			return nil, fmt.Errorf("%w: booking %s: %v", ErrInvalidResponse, b.ID, err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// GetServices получает каталог услуг мастера
func (c *Client) GetServices(ctx context.Context, providerID uuid.UUID) ([]domain.Service, error) {
	var dto serviceListDTO
	if err := c.get(ctx, providerPath(providerID, "services"), &dto); err != nil {
		return nil, err
	}

	services := make([]domain.Service, 0, len(dto.Services))
	for _, s := range dto.Services {
		services = append(services, s.toDomain(providerID))
	}
	return services, nil
}

// GetSettings получает настройки записи мастера: дневной лимит и горизонт
func (c *Client) GetSettings(ctx context.Context, providerID uuid.UUID) (*domain.ProviderSettings, error) {
	var dto settingsDTO
	if err := c.get(ctx, providerPath(providerID, "settings"), &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(providerID), nil
}

// GetProfile получает профиль клиента для предзаполнения контактов
// Без токена возвращает nil без ошибки
func (c *Client) GetProfile(ctx context.Context) (*wizard.UserProfile, error) {
	if c.token == "" {
		return nil, nil
	}

	var dto profileDTO
	if err := c.get(ctx, apiPrefix+"/users/me", &dto); err != nil {
		return nil, err
	}

	return &wizard.UserProfile{
		Name:       dto.Name,
		Email:      dto.Email,
		Phone:      dto.Phone,
		Address:    dto.Address,
		PostalCode: dto.PostalCode,
		City:       dto.City,
	}, nil
}

// CreateBooking отправляет запись, собранную мастером записи
// 409 оборачивается в wizard.ErrConflict, 409 с причиной day_full в wizard.ErrDayFull,
// 400 в wizard.ErrValidation
func (c *Client) CreateBooking(ctx context.Context, req wizard.BookingRequest) (*wizard.BookingResult, error) {
	body := createBookingDTO{
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		BookingDate:     req.Date,
		BookingTime:     req.Time.String(),
		DurationMinutes: req.DurationMinutes,
		Address:         req.Address,
	}
	if req.Notes != "" {
		body.Notes = &req.Notes
	}
	if !req.PriceHT.IsZero() {
		body.PriceHT = &req.PriceHT
	}
	if !req.PriceTTC.IsZero() {
		body.PriceTTC = &req.PriceTTC
	}

	c.log.Info("Creating booking for provider=%s on %s at %s", req.ProviderID, req.Date, req.Time)

	var dto createdBookingDTO
	err := c.do(ctx, http.MethodPost, apiPrefix+"/bookings", body, http.StatusCreated, &dto)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusConflict:
				if apiErr.Reason == string(availability.ReasonDayFull) {
					c.log.Warn("Booking rejected, day %s is full for provider=%s", req.Date, req.ProviderID)
					return nil, fmt.Errorf("%w: %s", wizard.ErrDayFull, apiErr.Message)
				}
				c.log.Warn("Booking rejected with conflict for provider=%s: %s", req.ProviderID, apiErr.Message)
				return nil, fmt.Errorf("%w: %s", wizard.ErrConflict, apiErr.Message)
			case http.StatusBadRequest:
				c.log.Warn("Booking rejected by validation for provider=%s: %s", req.ProviderID, apiErr.Message)
				return nil, fmt.Errorf("%w: %s", wizard.ErrValidation, apiErr.Message)
			}
		}
		c.log.Error("Failed to create booking for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", wizard.ErrCollaborator, err)
	}

	date, at, err := parseDateTime(dto.BookingDate, dto.BookingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: created booking: %v", wizard.ErrCollaborator, ErrInvalidResponse, err)
	}
	status, err := domain.ParseBookingStatus(dto.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: created booking: %v", wizard.ErrCollaborator, ErrInvalidResponse, err)
	}

	c.log.Info("Booking created: id=%s, status=%s", dto.ID, status)
	return &wizard.BookingResult{
		ID:          dto.ID,
		Status:      status,
		BookingDate: date,
		BookingTime: at,
	}, nil
}

// APIError ответ сервиса записи с неуспешным статусом
type APIError struct {
	StatusCode int
	Message    string
	Reason     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Message)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, http.StatusOK, out)
}

func (c *Client) do(ctx context.Context, method, path string, in interface{}, expected int, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case expected:
		// Продолжаем обработку
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s %s: %w", ErrNotFound, method, path, decodeAPIError(resp))
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, decodeAPIError(resp))
	default:
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(resp.Body)

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(raw)}
	var body ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.Reason = body.Reason
	}
	return apiErr
}

func providerPath(providerID uuid.UUID, resource string) string {
	return fmt.Sprintf("%s/providers/%s/%s", apiPrefix, providerID, resource)
}
