package slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityModels "github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots/models"
)

// Service сервис поиска слотов
type Service struct {
	slotRepo SlotRepository
	cache    SearchCache
	logger   Logger
}

// NewService создает новый экземпляр сервиса поиска
// cache может быть nil
func NewService(slotRepo SlotRepository, cache SearchCache, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		cache:    cache,
		logger:   logger,
	}
}

// Search ищет свободные неудаленные слоты по фильтрам
// Результат упорядочен по провайдеру, затем по времени начала
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	criteria := req.ToDomainCriteria()
	if err := validate(criteria); err != nil {
		s.logger.Warn("Search: validation failed: %v", err)
		return nil, err
	}

	if s.cache != nil {
		var cached models.SearchResponse
		hit, err := s.cache.Get(ctx, criteria, &cached)
		if err != nil {
			s.logger.Warn("Search: cache get failed, falling back to store: %v", err)
		} else if hit {
			s.logger.Info("Search: cache hit, %d slots", cached.Total)
			return &cached, nil
		}
	}

	found, err := s.slotRepo.SearchAvailable(ctx, criteria)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrStoreUnavailable, err)
	}

	resp := &models.SearchResponse{
		Total: len(found),
		Slots: availabilityModels.FromDomainSlots(found),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, criteria, resp); err != nil {
			s.logger.Warn("Search: cache set failed: %v", err)
		}
	}

	s.logger.Info("Search: found %d slots", resp.Total)
	return resp, nil
}

func validate(c domain.SlotSearchCriteria) error {
	if c.LocationType != nil && !c.LocationType.Valid() {
		return fmt.Errorf("%w: unknown locationType %q", ErrInvalidInput, *c.LocationType)
	}
	if c.AppointmentType != nil && !c.AppointmentType.Valid() {
		return fmt.Errorf("%w: unknown appointmentType %q", ErrInvalidInput, *c.AppointmentType)
	}
	if c.From != nil && c.To != nil && c.From.After(*c.To) {
		return fmt.Errorf("%w: startTime is after endTime", ErrInvalidInput)
	}
	if c.MinPrice != nil && *c.MinPrice < 0 {
		return fmt.Errorf("%w: minPrice must not be negative", ErrInvalidInput)
	}
	if c.MaxPrice != nil && *c.MaxPrice < 0 {
		return fmt.Errorf("%w: maxPrice must not be negative", ErrInvalidInput)
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return fmt.Errorf("%w: minPrice is greater than maxPrice", ErrInvalidInput)
	}
	return nil
}
