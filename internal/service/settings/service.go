package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
	providerRepo "github.com/m04kA/SMC-ArtisanBookingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-ArtisanBookingService/internal/service/settings/models"
)

// Service сервис для работы с настройками приёма записей
type Service struct {
	settingsRepo SettingsRepository
	providerRepo ProviderRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	providerRepo ProviderRepository,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// Get получает настройки мастера
// Если мастер не сохранял настройки, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, providerID uuid.UUID) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for provider=%s", providerID)

	if _, err := s.getProvider(ctx, "Get", providerID); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.GetOrDefault(ctx, providerID)
	if err != nil {
		s.logger.Error("Get: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update обновляет настройки мастера
// Доступно только владельцу мастера
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for provider=%s by user=%s", req.ProviderID, req.UserID)

	// 1. Проверяем права доступа
	provider, err := s.getProvider(ctx, "Update", req.ProviderID)
	if err != nil {
		return nil, err
	}
	if !provider.IsOwnedBy(req.UserID) {
		s.logger.Warn("Update: user=%s is not the owner of provider=%s", req.UserID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	// 2. Получаем текущие настройки
	settings, err := s.settingsRepo.GetOrDefault(ctx, req.ProviderID)
	if err != nil {
		s.logger.Error("Update: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 3. Применяем изменения и валидируем результат
	req.ApplyTo(settings)
	if err := validateSettings(settings); err != nil {
		s.logger.Warn("Update: validation failed for provider=%s: %v", req.ProviderID, err)
		return nil, err
	}

	// 4. Сохраняем
	updated, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for provider=%s", req.ProviderID)
	return models.FromDomainSettings(updated), nil
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

// validateSettings валидирует параметры настроек
func validateSettings(s *domain.ProviderSettings) error {
	if s.MaxBookingsPerDay < domain.MinMaxBookingsPerDay || s.MaxBookingsPerDay > domain.MaxMaxBookingsPerDay {
		return fmt.Errorf("%w: maxBookingsPerDay must be between %d and %d",
			ErrInvalidInput, domain.MinMaxBookingsPerDay, domain.MaxMaxBookingsPerDay)
	}

	if s.AdvanceBookingDays < domain.MinAdvanceBookingDays || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}
