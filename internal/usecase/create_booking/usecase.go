package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/availability"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/provider"
	serviceRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

var createBookingTracer = otel.Tracer("artisan.internal.usecase.create_booking")

// Исходы попытки бронирования для метрик
const (
	outcomeCreated  = "created"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	providerRepo   ProviderRepository
	serviceRepo    ServiceRepository
	settingsRepo   SettingsRepository
	scheduleLoader ScheduleLoader
	txManager      TransactionManager
	publisher      EventPublisher
	policy         domain.BlockingPolicy
	location       *time.Location
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	serviceRepo ServiceRepository,
	settingsRepo SettingsRepository,
	scheduleLoader ScheduleLoader,
	txManager TransactionManager,
	publisher EventPublisher,
	policy domain.BlockingPolicy,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		bookingRepo:    bookingRepo,
		providerRepo:   providerRepo,
		serviceRepo:    serviceRepo,
		settingsRepo:   settingsRepo,
		scheduleLoader: scheduleLoader,
		txManager:      txManager,
		publisher:      publisher,
		policy:         policy,
		location:       location,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := createBookingTracer.Start(ctx, "create_booking.Execute", trace.WithAttributes(
		attribute.String("provider.id", req.ProviderID.String()),
		attribute.String("booking.date", req.Date.Format(domain.DateFormat)),
		attribute.String("booking.time", req.Time.String()),
	))
	defer span.End()

	resp, err := uc.execute(ctx, req)
	uc.metrics.IncBooking(outcomeOf(err))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("booking.id", resp.ID.String()),
		attribute.String("booking.status", resp.Status),
	)
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%v, provider=%s, service=%v, date=%s, time=%s",
		req.ClientID, req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	today := domain.DateOnly(uc.timeProvider.Now().In(uc.location))
	startTime, _ := types.NewTimeStringFromString(req.Time.String())

	// 2. Проверяем мастера
	if _, err := uc.providerRepo.GetByID(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("CreateBooking: provider=%s not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 3. Получаем услугу, если она выбрана
	var service *domain.Service
	if req.ServiceID != nil {
		svc, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service=%s not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get service=%s: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if err := validateService(svc, req.ProviderID); err != nil {
			uc.logger.Warn("CreateBooking: service=%s rejected for provider=%s: %v", svc.ID, req.ProviderID, err)
			return nil, err
		}
		service = svc
	}

	duration := resolveDuration(req, service)

	// 4. Настройки приёма записей
	settings, err := uc.settingsRepo.GetOrDefault(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 5. Проверяем дату и время по расписанию
	schedule, err := uc.scheduleLoader.LoadSchedule(ctx, req.ProviderID, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load schedule for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
	}

	if reason := availability.CheckDate(date, today, req.ServiceID, *schedule); reason != availability.ReasonNone {
		uc.logger.Warn("CreateBooking: date=%s is not bookable for provider=%s (%s)",
			date.Format(domain.DateFormat), req.ProviderID, reason)
		return nil, fmt.Errorf("%w: %s", ErrDateNotBookable, reason)
	}
	if settings.IsBeyondHorizon(date, today) {
		uc.logger.Warn("CreateBooking: date=%s is beyond %d days horizon", date.Format(domain.DateFormat), settings.AdvanceBookingDays)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
	}

	window, _ := domain.WindowForDay(schedule.Windows, domain.WeekdayOf(date))
	if err := validateFitsWindow(window, req, duration); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	booking := &domain.Booking{
		ProviderID:      req.ProviderID,
		ClientID:        req.ClientID,
		ServiceID:       req.ServiceID,
		BookingDate:     date,
		BookingTime:     &startTime,
		DurationMinutes: duration,
		Status:          settings.InitialStatus(),
		Address:         resolveAddress(req.Address),
		Notes:           trimNotes(req.Notes),
	}
	booking.PriceHT, booking.PriceTTC = resolvePrices(req, service)

	var result *domain.Booking

	// 6. Перепроверяем занятость и сохраняем в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Записи дня с блокировкой строк (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByProviderWithFilter(txCtx, domain.ProviderBookingsFilter{
			ProviderID: req.ProviderID,
			StartDate:  &date,
			EndDate:    &date,
			Statuses:   uc.policy.BlockingStatuses(),
			ForUpdate:  true,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}
		dayBookings := availability.FilterBookingsForDate(dereference(bookings), date, uc.policy)

		// 6.2. Дневной лимит
		if settings.IsDayFull(len(dayBookings)) {
			uc.logger.Warn("CreateBooking: provider=%s reached %d bookings on %s",
				req.ProviderID, settings.MaxBookingsPerDay, date.Format(domain.DateFormat))
			return ErrDayFull
		}

		// 6.3. Пересечение с существующими записями
		if !availability.IsSlotFree(startTime, duration, dayBookings) {
			uc.logger.Warn("CreateBooking: slot %s %s (%d min) overlaps an existing booking",
				date.Format(domain.DateFormat), startTime, duration)
			return ErrSlotNotAvailable
		}

		// 6.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrDayFull), errors.Is(err, ErrSlotNotAvailable):
			return nil, err
		case bookingRepo.IsConflict(err):
			uc.logger.Warn("CreateBooking: concurrent booking for provider=%s at %s %s: %v",
				req.ProviderID, date.Format(domain.DateFormat), startTime, err)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateBooking: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s with status=%s", result.ID, result.Status)

	// 7. Событие публикуется после фиксации транзакции
	if err := uc.publisher.Publish(ctx, events.BookingCreated(result, uc.timeProvider.Now())); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%s: %v", result.ID, err)
	}

	return toResponse(result), nil
}

// resolveDuration длительность записи: явный параметр, затем длительность услуги, затем значение по умолчанию
func resolveDuration(req *Request, service *domain.Service) int {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes
	}
	if service != nil {
		return service.EffectiveDuration()
	}
	return domain.DefaultBookingDurationMinutes
}

// resolvePrices цены из запроса, недостающие берутся из услуги
func resolvePrices(req *Request, service *domain.Service) (ht, ttc decimal.Decimal) {
	if service != nil {
		ht, ttc = service.PriceHT, service.PriceTTC
	}
	if req.PriceHT != nil {
		ht = *req.PriceHT
	}
	if req.PriceTTC != nil {
		ttc = *req.PriceTTC
	}
	return ht, ttc
}

func resolveAddress(address string) string {
	if trimmed := strings.TrimSpace(address); trimmed != "" {
		return trimmed
	}
	return domain.DefaultBookingAddress
}

func trimNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// dereference копирует записи репозитория в значения для движка доступности
func dereference(bookings []*domain.Booking) []domain.Booking {
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil {
			out = append(out, *b)
		}
	}
	return out
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeCreated
	case errors.Is(err, ErrSlotNotAvailable):
		return outcomeConflict
	case errors.Is(err, ErrInternal):
		return outcomeError
	default:
		return outcomeRejected
	}
}

func toResponse(b *domain.Booking) *Response {
	resp := &Response{
		ID:              b.ID,
		ProviderID:      b.ProviderID,
		ClientID:        b.ClientID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Address:         b.Address,
		Notes:           b.Notes,
		PriceHT:         b.PriceHT,
		PriceTTC:        b.PriceTTC,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.BookingTime != nil {
		resp.BookingTime = *b.BookingTime
	}
	return resp
}
