package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/availability"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	providerRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/provider"
	serviceRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/service"
)

var slotsTracer = otel.Tracer("artisan.internal.usecase.get_available_slots")

// UseCase use case для получения слотов на дату
type UseCase struct {
	providerRepo   ProviderRepository
	serviceRepo    ServiceRepository
	settingsRepo   SettingsRepository
	scheduleLoader ScheduleLoader
	bookingRepo    BookingRepository
	policy         domain.BlockingPolicy
	location       *time.Location
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
// location задаёт часовой пояс, в котором определяется "сегодня"
func NewUseCase(
	providerRepo ProviderRepository,
	serviceRepo ServiceRepository,
	settingsRepo SettingsRepository,
	scheduleLoader ScheduleLoader,
	bookingRepo BookingRepository,
	policy domain.BlockingPolicy,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		providerRepo:   providerRepo,
		serviceRepo:    serviceRepo,
		settingsRepo:   settingsRepo,
		scheduleLoader: scheduleLoader,
		bookingRepo:    bookingRepo,
		policy:         policy,
		location:       location,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := slotsTracer.Start(ctx, "get_available_slots.Execute", trace.WithAttributes(
		attribute.String("provider.id", req.ProviderID.String()),
		attribute.String("booking.date", req.Date.Format(domain.DateFormat)),
	))
	defer span.End()

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("slots.bookable", resp.Bookable),
		attribute.Int("slots.total", len(resp.Slots)),
		attribute.Int("slots.available", domain.CountAvailable(resp.Slots)),
	)
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%s, date=%s, service=%v, duration=%v",
		req.ProviderID, req.Date.Format(domain.DateFormat), req.ServiceID, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	today := domain.DateOnly(uc.timeProvider.Now().In(uc.location))

	// 2. Проверяем мастера
	if _, err := uc.providerRepo.GetByID(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider=%s not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 3. Получаем услугу, если она выбрана
	var service *domain.Service
	if req.ServiceID != nil {
		svc, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service=%s not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service=%s: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if err := validateService(svc, req.ProviderID); err != nil {
			uc.logger.Warn("GetAvailableSlots: service=%s rejected for provider=%s: %v", svc.ID, req.ProviderID, err)
			return nil, err
		}
		service = svc
	}

	duration := resolveDuration(req, service)
	resp := &Response{
		Date:            date,
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		Slots:           []domain.Slot{},
	}

	// 4. Настройки приёма записей
	settings, err := uc.settingsRepo.GetOrDefault(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 5. Расписание и проверка даты
	schedule, err := uc.scheduleLoader.LoadSchedule(ctx, req.ProviderID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load schedule for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
	}

	reason := availability.CheckDate(date, today, req.ServiceID, *schedule)
	if reason == availability.ReasonNone && settings.IsBeyondHorizon(date, today) {
		reason = availability.ReasonBeyondHorizon
	}
	if reason != availability.ReasonNone {
		uc.logger.Info("GetAvailableSlots: date=%s is not bookable for provider=%s (%s)",
			date.Format(domain.DateFormat), req.ProviderID, reason)
		resp.Reason = reason
		uc.metrics.ObserveSlots(0, 0)
		return resp, nil
	}

	// 6. Записи на эту дату, которые занимают время
	bookings, err := uc.bookingRepo.GetByProviderWithFilter(ctx, domain.ProviderBookingsFilter{
		ProviderID: req.ProviderID,
		StartDate:  &date,
		EndDate:    &date,
		Statuses:   uc.policy.BlockingStatuses(),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	dayBookings := availability.FilterBookingsForDate(dereference(bookings), date, uc.policy)

	// 7. Генерируем слоты и размечаем занятость
	resp.Slots = availability.DaySlots(date, today, req.ServiceID, duration, *schedule, dayBookings)
	resp.Bookable = true

	if settings.IsDayFull(len(dayBookings)) {
		uc.logger.Info("GetAvailableSlots: provider=%s reached %d bookings on %s",
			req.ProviderID, settings.MaxBookingsPerDay, date.Format(domain.DateFormat))
		resp.Slots = availability.MarkUnavailable(resp.Slots)
		resp.Bookable = false
		resp.Reason = availability.ReasonDayFull
	}

	available := domain.CountAvailable(resp.Slots)
	uc.metrics.ObserveSlots(len(resp.Slots), available)

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d available) for provider=%s, date=%s, duration=%d",
		len(resp.Slots), available, req.ProviderID, date.Format(domain.DateFormat), duration)

	return resp, nil
}
