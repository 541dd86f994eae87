package templates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/templates/models"
)

// Service сервис шаблонов доступности
type Service struct {
	templateRepo TemplateRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(templateRepo TemplateRepository, logger Logger) *Service {
	return &Service{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// Create сохраняет шаблон как есть, слоты не создаются
func (s *Service) Create(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Create: provider=%s, name=%q, days=%v", req.ProviderID, req.Name, req.DaysOfWeek)

	if err := validate(req); err != nil {
		s.logger.Warn("Create: validation failed for provider=%s: %v", req.ProviderID, err)
		return nil, err
	}

	created, err := s.templateRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Create: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Create: template id=%s created for provider=%s", created.ID, created.ProviderID)
	return models.FromDomain(created), nil
}

// ListByProvider возвращает шаблоны провайдера, отсортированные по имени
func (s *Service) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*models.TemplateResponse, error) {
	if providerID == uuid.Nil {
		return nil, fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}

	s.logger.Info("ListByProvider: provider=%s", providerID)

	list, err := s.templateRepo.GetByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ListByProvider: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListByProvider - repository error: %v", ErrStoreUnavailable, err)
	}

	result := make([]*models.TemplateResponse, 0, len(list))
	for _, t := range list {
		result = append(result, models.FromDomain(t))
	}

	s.logger.Info("ListByProvider: found %d templates for provider=%s", len(result), providerID)
	return result, nil
}

func validate(req *models.CreateTemplateRequest) error {
	if req.ProviderID == uuid.Nil {
		return fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxTemplateNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxTemplateNameLength)
	}

	if len(req.DaysOfWeek) == 0 {
		return fmt.Errorf("%w: daysOfWeek must not be empty", ErrInvalidInput)
	}
	for _, d := range req.DaysOfWeek {
		if !d.Valid() {
			return fmt.Errorf("%w: unknown day of week %q", ErrInvalidInput, d)
		}
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if req.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidInput)
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
	}

	return nil
}
