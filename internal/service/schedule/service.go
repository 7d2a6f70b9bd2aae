package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/availability"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	absenceRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/absence"
	windowRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/availability"
	providerRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-ArtisanBookingService/pkg/types"
)

// Service сервис расписания мастера: окна, ограничения услуг, отсутствия
type Service struct {
	providerRepo    ProviderRepository
	windowRepo      WindowRepository
	eligibilityRepo EligibilityRepository
	absenceRepo     AbsenceRepository
	serviceRepo     ServiceRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	providerRepo ProviderRepository,
	windowRepo WindowRepository,
	eligibilityRepo EligibilityRepository,
	absenceRepo AbsenceRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		providerRepo:    providerRepo,
		windowRepo:      windowRepo,
		eligibilityRepo: eligibilityRepo,
		absenceRepo:     absenceRepo,
		serviceRepo:     serviceRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// LoadSchedule загружает всё расписание мастера для движка доступности
// Окна, ограничения и отсутствия читаются в одной транзакции только для чтения
// Отсутствия, закончившиеся до from, не загружаются
func (s *Service) LoadSchedule(ctx context.Context, providerID uuid.UUID, from time.Time) (*availability.Schedule, error) {
	schedule := &availability.Schedule{}
	fromDate := domain.DateOnly(from)

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		windows, err := s.windowRepo.GetByProvider(txCtx, providerID)
		if err != nil {
			return fmt.Errorf("windows: %w", err)
		}

		overrides, err := s.eligibilityRepo.GetByProvider(txCtx, providerID)
		if err != nil {
			return fmt.Errorf("overrides: %w", err)
		}

		absences, err := s.absenceRepo.GetByProvider(txCtx, providerID, &fromDate)
		if err != nil {
			return fmt.Errorf("absences: %w", err)
		}

		schedule.Windows = windows
		schedule.Overrides = overrides
		schedule.Absences = absences
		return nil
	})
	if err != nil {
		s.logger.Error("LoadSchedule: failed for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: LoadSchedule - %v", ErrInternal, err)
	}

	return schedule, nil
}

// GetAvailability получает недельное расписание мастера
func (s *Service) GetAvailability(ctx context.Context, providerID uuid.UUID) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: provider=%s", providerID)

	if _, err := s.getProvider(ctx, "GetAvailability", providerID); err != nil {
		return nil, err
	}

	windows, err := s.windowRepo.GetByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("GetAvailability: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWindows(providerID, windows), nil
}

// GetEligibility получает ограничения услуг по дням недели
func (s *Service) GetEligibility(ctx context.Context, providerID uuid.UUID) (*models.EligibilityResponse, error) {
	s.logger.Info("GetEligibility: provider=%s", providerID)

	if _, err := s.getProvider(ctx, "GetEligibility", providerID); err != nil {
		return nil, err
	}

	overrides, err := s.eligibilityRepo.GetByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("GetEligibility: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetEligibility - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOverrides(providerID, overrides), nil
}

// GetAbsences получает периоды отсутствия мастера
func (s *Service) GetAbsences(ctx context.Context, providerID uuid.UUID) (*models.AbsenceListResponse, error) {
	s.logger.Info("GetAbsences: provider=%s", providerID)

	if _, err := s.getProvider(ctx, "GetAbsences", providerID); err != nil {
		return nil, err
	}

	absences, err := s.absenceRepo.GetByProvider(ctx, providerID, nil)
	if err != nil {
		s.logger.Error("GetAbsences: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetAbsences - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAbsences(absences), nil
}

// GetServices получает активные услуги мастера
func (s *Service) GetServices(ctx context.Context, providerID uuid.UUID) (*models.ServiceListResponse, error) {
	s.logger.Info("GetServices: provider=%s", providerID)

	if _, err := s.getProvider(ctx, "GetServices", providerID); err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.GetByProvider(ctx, providerID, true)
	if err != nil {
		s.logger.Error("GetServices: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServices(services), nil
}

// ToggleWindow включает или выключает день недели
// Если окна на этот день нет, создаётся включённое окно с часами по умолчанию
func (s *Service) ToggleWindow(ctx context.Context, userID, providerID uuid.UUID, dayOfWeek int) (*models.WindowResponse, error) {
	s.logger.Info("ToggleWindow: provider=%s, day=%d by user=%s", providerID, dayOfWeek, userID)

	day := domain.Weekday(dayOfWeek)
	if !day.IsValid() {
		s.logger.Warn("ToggleWindow: invalid day=%d", dayOfWeek)
		return nil, fmt.Errorf("%w: dayOfWeek must be in 0..6", ErrInvalidInput)
	}

	if err := s.checkOwner(ctx, "ToggleWindow", providerID, userID); err != nil {
		return nil, err
	}

	var result *domain.WeeklyAvailabilityWindow
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		window, err := s.windowRepo.GetByProviderAndDay(txCtx, providerID, day)
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			created, err := s.windowRepo.Create(txCtx, &domain.WeeklyAvailabilityWindow{
				ProviderID:  providerID,
				DayOfWeek:   day,
				IsAvailable: true,
				StartTime:   domain.DefaultWindowStart,
				EndTime:     domain.DefaultWindowEnd,
			})
			if err != nil {
				return fmt.Errorf("%w: ToggleWindow - create: %v", ErrInternal, err)
			}
			result = created
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: ToggleWindow - get window: %v", ErrInternal, err)
		}

		if err := s.windowRepo.SetAvailable(txCtx, window.ID, !window.IsAvailable); err != nil {
			return fmt.Errorf("%w: ToggleWindow - update: %v", ErrInternal, err)
		}
		window.IsAvailable = !window.IsAvailable
		result = window
		return nil
	})
	if err != nil {
		s.logger.Error("ToggleWindow: failed for provider=%s, day=%d: %v", providerID, dayOfWeek, err)
		return nil, err
	}

	s.logger.Info("ToggleWindow: provider=%s, day=%s is now available=%t", providerID, day, result.IsAvailable)
	return models.FromDomainWindow(result), nil
}

// UpdateWindow меняет часы работы в день недели
// Если окна на этот день нет, оно создаётся включённым
func (s *Service) UpdateWindow(ctx context.Context, req *models.UpdateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("UpdateWindow: provider=%s, day=%d, %s-%s by user=%s",
		req.ProviderID, req.DayOfWeek, req.StartTime, req.EndTime, req.UserID)

	day, start, end, err := validateWindow(req)
	if err != nil {
		s.logger.Warn("UpdateWindow: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkOwner(ctx, "UpdateWindow", req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	var result *domain.WeeklyAvailabilityWindow
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		window, err := s.windowRepo.GetByProviderAndDay(txCtx, req.ProviderID, day)
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			created, err := s.windowRepo.Create(txCtx, &domain.WeeklyAvailabilityWindow{
				ProviderID:  req.ProviderID,
				DayOfWeek:   day,
				IsAvailable: true,
				StartTime:   start,
				EndTime:     end,
			})
			if err != nil {
				return fmt.Errorf("%w: UpdateWindow - create: %v", ErrInternal, err)
			}
			result = created
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: UpdateWindow - get window: %v", ErrInternal, err)
		}

		if err := s.windowRepo.UpdateTimes(txCtx, window.ID, start, end); err != nil {
			return fmt.Errorf("%w: UpdateWindow - update: %v", ErrInternal, err)
		}
		window.StartTime = start
		window.EndTime = end
		result = window
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateWindow: failed for provider=%s, day=%d: %v", req.ProviderID, req.DayOfWeek, err)
		return nil, err
	}

	return models.FromDomainWindow(result), nil
}

// ReplaceEligibility заменяет ограничения услуг по дням недели
// Пустой набор снимает все ограничения
func (s *Service) ReplaceEligibility(ctx context.Context, req *models.ReplaceEligibilityRequest) (*models.EligibilityResponse, error) {
	s.logger.Info("ReplaceEligibility: provider=%s, days=%d by user=%s", req.ProviderID, len(req.Overrides), req.UserID)

	for day := range req.Overrides {
		if !domain.Weekday(day).IsValid() {
			s.logger.Warn("ReplaceEligibility: invalid day=%d", day)
			return nil, fmt.Errorf("%w: dayOfWeek must be in 0..6, got %d", ErrInvalidInput, day)
		}
	}

	if err := s.checkOwner(ctx, "ReplaceEligibility", req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	overrides := models.ToDomainOverrides(req.Overrides)

	services, err := s.serviceRepo.GetByProvider(ctx, req.ProviderID, false)
	if err != nil {
		s.logger.Error("ReplaceEligibility: failed to get services for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ReplaceEligibility - services: %v", ErrInternal, err)
	}
	owned := make(map[uuid.UUID]struct{}, len(services))
	for _, svc := range services {
		owned[svc.ID] = struct{}{}
	}
	for day, ids := range overrides {
		for _, id := range ids {
			if _, ok := owned[id]; !ok {
				s.logger.Warn("ReplaceEligibility: service=%s on day=%s does not belong to provider=%s", id, day, req.ProviderID)
				return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, id)
			}
		}
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.eligibilityRepo.Replace(txCtx, req.ProviderID, overrides)
	})
	if err != nil {
		s.logger.Error("ReplaceEligibility: failed for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ReplaceEligibility - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOverrides(req.ProviderID, overrides), nil
}

// CreateAbsence создает период отсутствия мастера
func (s *Service) CreateAbsence(ctx context.Context, req *models.CreateAbsenceRequest) (*models.AbsenceResponse, error) {
	s.logger.Info("CreateAbsence: provider=%s, %s..%s by user=%s", req.ProviderID, req.StartDate, req.EndDate, req.UserID)

	absence, err := validateAbsence(req)
	if err != nil {
		s.logger.Warn("CreateAbsence: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkOwner(ctx, "CreateAbsence", req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	created, err := s.absenceRepo.Create(ctx, absence)
	if err != nil {
		s.logger.Error("CreateAbsence: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: CreateAbsence - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAbsence: created absence id=%s", created.ID)
	return models.FromDomainAbsence(created), nil
}

// DeleteAbsence удаляет период отсутствия
// Удалить может только владелец мастера
func (s *Service) DeleteAbsence(ctx context.Context, userID, absenceID uuid.UUID) error {
	s.logger.Info("DeleteAbsence: absence=%s by user=%s", absenceID, userID)

	absence, err := s.absenceRepo.GetByID(ctx, absenceID)
	if err != nil {
		if errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
			s.logger.Warn("DeleteAbsence: absence=%s not found", absenceID)
			return ErrAbsenceNotFound
		}
		s.logger.Error("DeleteAbsence: repository error for absence=%s: %v", absenceID, err)
		return fmt.Errorf("%w: DeleteAbsence - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwner(ctx, "DeleteAbsence", absence.ProviderID, userID); err != nil {
		return err
	}

	if err := s.absenceRepo.Delete(ctx, absenceID); err != nil {
		if errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
			return ErrAbsenceNotFound
		}
		s.logger.Error("DeleteAbsence: repository error for absence=%s: %v", absenceID, err)
		return fmt.Errorf("%w: DeleteAbsence - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) getProvider(ctx context.Context, op string, providerID uuid.UUID) (*domain.Provider, error) {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("%s: provider=%s not found", op, providerID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("%s: failed to get provider=%s: %v", op, providerID, err)
		return nil, fmt.Errorf("%w: %s - failed to get provider: %v", ErrInternal, op, err)
	}
	return provider, nil
}

// checkOwner проверяет, что пользователь управляет мастером
func (s *Service) checkOwner(ctx context.Context, op string, providerID, userID uuid.UUID) error {
	provider, err := s.getProvider(ctx, op, providerID)
	if err != nil {
		return err
	}
	if !provider.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%s is not the owner of provider=%s", op, userID, providerID)
		return ErrAccessDenied
	}
	return nil
}

func validateWindow(req *models.UpdateWindowRequest) (domain.Weekday, types.TimeString, types.TimeString, error) {
	day := domain.Weekday(req.DayOfWeek)
	if !day.IsValid() {
		return 0, "", "", fmt.Errorf("%w: dayOfWeek must be in 0..6", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return 0, "", "", fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return 0, "", "", fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return 0, "", "", fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return day, start, end, nil
}

func validateAbsence(req *models.CreateAbsenceRequest) (*domain.Absence, error) {
	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: startDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: endDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	reason := trimOptional(req.Reason)
	if reason != nil && utf8.RuneCountInString(*reason) > domain.MaxAbsenceReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxAbsenceReasonLength)
	}
	label := trimOptional(req.Label)
	if label != nil && utf8.RuneCountInString(*label) > domain.MaxAbsenceLabelLength {
		return nil, fmt.Errorf("%w: label must be at most %d characters", ErrInvalidInput, domain.MaxAbsenceLabelLength)
	}

	return &domain.Absence{
		ProviderID: req.ProviderID,
		StartDate:  start,
		EndDate:    end,
		Reason:     reason,
		Label:      label,
		Source:     domain.DefaultAbsenceSource,
	}, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
