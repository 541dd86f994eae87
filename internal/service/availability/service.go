package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
)

// Service сервис чтения окон доступности
type Service struct {
	availabilityRepo AvailabilityRepository
	slotRepo         SlotRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса окон доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	slotRepo SlotRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		slotRepo:         slotRepo,
		logger:           logger,
	}
}

// GetByID получает окно и все его слоты, включая забронированные и удаленные
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetByID: fetching availability id=%s", id)

	window, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("GetByID: availability id=%s not found", id)
			return nil, ErrAvailabilityNotFound
		}
		s.logger.Error("GetByID: repository error for availability id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrStoreUnavailable, err)
	}

	slots, err := s.slotRepo.GetByAvailabilityID(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get slots for availability id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - slots repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("GetByID: successfully fetched availability id=%s with %d slots", id, len(slots))
	return models.FromDomainAvailability(window, slots), nil
}

// ListByProvider получает активные окна провайдера со слотами
// Если указан период, остаются окна, даты которых пересекаются с ним.
// Слоты окон периодом не фильтруются.
func (s *Service) ListByProvider(ctx context.Context, req *models.ListByProviderRequest) ([]*models.AvailabilityResponse, error) {
	filter := req.ToDomainFilter()

	if filter.ProviderID == uuid.Nil {
		return nil, fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}
	if (filter.StartDate == nil) != (filter.EndDate == nil) {
		return nil, fmt.Errorf("%w: startDate and endDate must be provided together", ErrInvalidInput)
	}

	var (
		windows []*domain.AvailabilityWindow
		err     error
	)
	if filter.HasDateRange() {
		if filter.StartDate.After(*filter.EndDate) {
			return nil, fmt.Errorf("%w: startDate is after endDate", ErrInvalidInput)
		}
		s.logger.Info("ListByProvider: provider=%s, period=%s to %s", filter.ProviderID,
			filter.StartDate.Format(domain.DateFormat), filter.EndDate.Format(domain.DateFormat))
		windows, err = s.availabilityRepo.GetActiveByProviderInDateRange(ctx, filter.ProviderID, *filter.StartDate, *filter.EndDate)
	} else {
		s.logger.Info("ListByProvider: provider=%s", filter.ProviderID)
		windows, err = s.availabilityRepo.GetActiveByProvider(ctx, filter.ProviderID)
	}
	if err != nil {
		s.logger.Error("ListByProvider: repository error for provider=%s: %v", filter.ProviderID, err)
		return nil, fmt.Errorf("%w: ListByProvider - repository error: %v", ErrStoreUnavailable, err)
	}

	ids := make([]uuid.UUID, 0, len(windows))
	for _, w := range windows {
		ids = append(ids, w.ID)
	}

	slots, err := s.slotRepo.GetByAvailabilityIDs(ctx, ids)
	if err != nil {
		s.logger.Error("ListByProvider: failed to get slots for provider=%s: %v", filter.ProviderID, err)
		return nil, fmt.Errorf("%w: ListByProvider - slots repository error: %v", ErrStoreUnavailable, err)
	}

	byWindow := make(map[uuid.UUID][]*domain.Slot, len(windows))
	for _, slot := range slots {
		byWindow[slot.AvailabilityID] = append(byWindow[slot.AvailabilityID], slot)
	}

	result := make([]*models.AvailabilityResponse, 0, len(windows))
	for _, w := range windows {
		result = append(result, models.FromDomainAvailability(w, byWindow[w.ID]))
	}

	s.logger.Info("ListByProvider: successfully fetched %d windows for provider=%s", len(result), filter.ProviderID)
	return result, nil
}
