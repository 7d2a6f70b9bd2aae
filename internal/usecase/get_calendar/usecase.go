package get_calendar

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

var calendarTracer = otel.Tracer("artisan.internal.usecase.get_calendar")

// UseCase use case для календаря доступных дат на месяц
type UseCase struct {
	providerRepo   ProviderRepository
	serviceRepo    ServiceRepository
	settingsRepo   SettingsRepository
	scheduleLoader ScheduleLoader
	bookingRepo    BookingRepository
	policy         domain.BlockingPolicy
	location       *time.Location
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	providerRepo ProviderRepository,
	serviceRepo ServiceRepository,
	settingsRepo SettingsRepository,
	scheduleLoader ScheduleLoader,
	bookingRepo BookingRepository,
	policy domain.BlockingPolicy,
	location *time.Location,
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
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := calendarTracer.Start(ctx, "get_calendar.Execute", trace.WithAttributes(
		attribute.String("provider.id", req.ProviderID.String()),
		attribute.String("calendar.month", req.Month),
	))
	defer span.End()

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("calendar.bookable_days", countBookable(resp.Days)))
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: provider=%s, month=%s, service=%v", req.ProviderID, req.Month, req.ServiceID)

	month, err := parseRequest(req)
	if err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}
	today := domain.DateOnly(uc.timeProvider.Now().In(uc.location))

	if _, err := uc.providerRepo.GetByID(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetCalendar: provider=%s not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetCalendar: failed to get provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	if req.ServiceID != nil {
		svc, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetCalendar: service=%s not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetCalendar: failed to get service=%s: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if err := validateService(svc, req.ProviderID); err != nil {
			uc.logger.Warn("GetCalendar: service=%s rejected for provider=%s: %v", svc.ID, req.ProviderID, err)
			return nil, err
		}
	}

	settings, err := uc.settingsRepo.GetOrDefault(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get settings for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	schedule, err := uc.scheduleLoader.LoadSchedule(ctx, req.ProviderID, month)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to load schedule for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
	}

	days := availability.MonthAvailability(month.Year(), month.Month(), today, req.ServiceID, *schedule)
	for i := range days {
		if days[i].Bookable && settings.IsBeyondHorizon(days[i].Date, today) {
			days[i].Bookable = false
			days[i].Reason = availability.ReasonBeyondHorizon
		}
	}

	// Дневной лимит проверяем только если он задан
	if settings.MaxBookingsPerDay > 0 && countBookable(days) > 0 {
		if err := uc.markFullDays(ctx, req, month, settings, days); err != nil {
			return nil, err
		}
	}

	uc.logger.Info("GetCalendar: provider=%s, month=%s has %d bookable days",
		req.ProviderID, req.Month, countBookable(days))

	return &Response{
		ProviderID: req.ProviderID,
		ServiceID:  req.ServiceID,
		Month:      month,
		Days:       days,
		Weeks:      availability.MonthGrid(month.Year(), month.Month()),
	}, nil
}

// markFullDays помечает дни, на которые уже набран дневной лимит записей
func (uc *UseCase) markFullDays(
	ctx context.Context,
	req *Request,
	month time.Time,
	settings *domain.ProviderSettings,
	days []availability.CalendarDay,
) error {
	last := month.AddDate(0, 1, -1)
	bookings, err := uc.bookingRepo.GetByProviderWithFilter(ctx, domain.ProviderBookingsFilter{
		ProviderID: req.ProviderID,
		StartDate:  &month,
		EndDate:    &last,
		Statuses:   uc.policy.BlockingStatuses(),
	})
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get bookings: %v", err)
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	perDay := make(map[string]int, len(days))
	for _, b := range bookings {
		if b == nil || !uc.policy.Blocks(b.Status) {
			continue
		}
		perDay[b.BookingDate.Format(domain.DateFormat)]++
	}

	for i := range days {
		if days[i].Bookable && settings.IsDayFull(perDay[days[i].Date.Format(domain.DateFormat)]) {
			days[i].Bookable = false
			days[i].Reason = availability.ReasonDayFull
		}
	}
	return nil
}

func countBookable(days []availability.CalendarDay) int {
	n := 0
	for _, d := range days {
		if d.Bookable {
			n++
		}
	}
	return n
}
