package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	publisher    EventPublisher
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
// location задаёт часовой пояс, в котором определяется "сегодня"
func NewService(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	publisher EventPublisher,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Видеть запись может клиент, который её создал, или владелец мастера
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.IsOwnedByClient(userID) {
		return models.FromDomainBooking(booking), nil
	}
	if err := s.checkProviderOwner(ctx, "GetByID", booking.ProviderID, userID); err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, false), nil
}

// GetProviderBookings получает записи мастера начиная с сегодняшнего дня
// Владелец мастера видит записи полностью, остальные только занятость
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetProviderBookings: fetching bookings for provider=%s, status=%v", req.ProviderID, req.Status)

	provider, err := s.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("GetProviderBookings: provider=%s not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("GetProviderBookings: failed to get provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - failed to get provider: %v", ErrInternal, err)
	}

	filter := domain.ProviderBookingsFilter{
		ProviderID: req.ProviderID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Statuses:   domain.UpcomingStatuses,
	}
	if filter.StartDate == nil {
		today := domain.DateOnly(s.timeProvider.Now().In(s.location))
		filter.StartDate = &today
	}
	if filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		s.logger.Warn("GetProviderBookings: endDate before startDate for provider=%s", req.ProviderID)
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetProviderBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	public := req.UserID == nil || !provider.IsOwnedBy(*req.UserID)

	s.logger.Info("GetProviderBookings: successfully fetched %d bookings for provider=%s (public=%t)",
		len(bookings), req.ProviderID, public)
	return models.FromDomainBookingList(bookings, public), nil
}

// Cancel отменяет бронирование
// Отменить может клиент, создавший запись, или владелец мастера
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, req.UserID)

	var reason *string
	if req.CancellationReason != nil {
		trimmed := strings.TrimSpace(*req.CancellationReason)
		if utf8.RuneCountInString(trimmed) > domain.MaxCancellationReasonLength {
			s.logger.Warn("Cancel: cancellation reason too long for booking id=%s", bookingID)
			return fmt.Errorf("%w: cancellationReason must be at most %d characters",
				ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
		if trimmed != "" {
			reason = &trimmed
		}
	}

	// Получаем бронирование
	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	// Проверяем права доступа
	if !booking.IsOwnedByClient(req.UserID) {
		if err := s.checkProviderOwner(ctx, "Cancel", booking.ProviderID, req.UserID); err != nil {
			return err
		}
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Отменяем, только если статус не изменился с момента чтения
	if err := s.bookingRepo.Cancel(ctx, bookingID, booking.Status, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: booking id=%s status changed concurrently", bookingID)
			return ErrStatusConflict
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	previous := booking.Status
	booking.Status = domain.StatusCancelled
	booking.CancellationReason = reason
	s.publish(ctx, events.BookingStatusChanged(booking, previous, s.timeProvider.Now()))

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только владельцу мастера: pending -> accepted|rejected, accepted -> completed
func (s *Service) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%s",
		bookingID, req.Status, req.UserID)

	next, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkProviderOwner(ctx, "UpdateStatus", booking.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%s",
			booking.Status, next, bookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, next); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("UpdateStatus: booking id=%s status changed concurrently", bookingID)
			return nil, ErrStatusConflict
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	previous := booking.Status
	booking.Status = next
	s.publish(ctx, events.BookingStatusChanged(booking, previous, s.timeProvider.Now()))

	s.logger.Info("UpdateStatus: booking id=%s %s -> %s", bookingID, previous, next)
	return models.FromDomainBooking(booking), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkProviderOwner проверяет, что пользователь управляет мастером
func (s *Service) checkProviderOwner(ctx context.Context, op string, providerID, userID uuid.UUID) error {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("%s: provider=%s not found", op, providerID)
			return ErrAccessDenied
		}
		s.logger.Error("%s: failed to get provider=%s: %v", op, providerID, err)
		return fmt.Errorf("%w: %s - failed to get provider: %v", ErrInternal, op, err)
	}

	if !provider.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%s is not the owner of provider=%s", op, userID, providerID)
		return ErrAccessDenied
	}
	return nil
}

// publish отправляет событие, ошибка публикации только логируется
func (s *Service) publish(ctx context.Context, event events.BookingEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish: failed to publish %s for booking id=%s: %v", event.Type, event.BookingID, err)
	}
}
