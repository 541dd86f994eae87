package create_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/scheduling"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/windowdef"
)

const operation = "create"

// UseCase use case для создания окна доступности
type UseCase struct {
	availabilityRepo AvailabilityRepository
	slotRepo         SlotRepository
	providerClient   ProviderServiceClient
	txManager        TransactionManager
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// providerClient и metrics могут быть nil
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	slotRepo SlotRepository,
	providerClient ProviderServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		slotRepo:         slotRepo,
		providerClient:   providerClient,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute создает окно и его слоты
// Проверка пересечений и запись идут в одной сериализуемой транзакции под
// advisory-блокировкой провайдера; при конфликте ничего не сохраняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAvailability: provider=%s, dates=%s..%s, time=%s-%s, tz=%s, slot=%d, break=%d",
		req.ProviderID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.StartTime, req.EndTime, req.Timezone, req.SlotDuration, req.BreakDuration)

	// 1. Валидация входных данных
	if err := req.Validate(); err != nil {
		uc.logger.Warn("CreateAvailability: validation failed: %v", err)
		return nil, err
	}

	window := req.ToWindow()

	// 2. Проверяем провайдера и обогащаем специализацию
	if err := uc.resolveProvider(ctx, window); err != nil {
		return nil, err
	}

	// 3. Генерируем слоты
	candidates, err := windowdef.Generate(window)
	if err != nil {
		uc.logger.Warn("CreateAvailability: slot generation failed: %v", err)
		return nil, err
	}

	var slots []*domain.Slot

	// 4. Проверка пересечений и запись в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.slotRepo.LockProvider(txCtx, window.ProviderID); err != nil {
			return fmt.Errorf("%w: failed to lock provider: %w", ErrStoreUnavailable, err)
		}

		if from, to, ok := scheduling.Span(candidates); ok {
			existing, err := uc.slotRepo.GetActiveByProviderInRange(txCtx, window.ProviderID, from, to)
			if err != nil {
				return fmt.Errorf("%w: failed to get existing slots: %w", ErrStoreUnavailable, err)
			}

			if overlap, found := scheduling.FindOverlap(candidates, existing); found {
				return fmt.Errorf("%w: %s", ErrSlotOverlap, overlap)
			}
		}

		created, err := uc.availabilityRepo.Create(txCtx, window)
		if err != nil {
			return fmt.Errorf("%w: failed to create availability: %w", ErrStoreUnavailable, err)
		}

		slots = scheduling.ToSlots(candidates, created.SlotTemplate())
		if err := uc.slotRepo.CreateBatch(txCtx, slots); err != nil {
			return fmt.Errorf("%w: failed to create slots: %w", ErrStoreUnavailable, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotOverlap) {
			if uc.metrics != nil {
				uc.metrics.IncOverlapConflict(operation)
			}
			uc.logger.Warn("CreateAvailability: provider=%s: %v", window.ProviderID, err)
			return nil, err
		}
		uc.logger.Error("CreateAvailability: transaction failed for provider=%s: %v", window.ProviderID, err)
		if errors.Is(err, ErrStoreUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if uc.metrics != nil {
		uc.metrics.AddSlotsGenerated(len(slots))
	}
	uc.logger.Info("CreateAvailability: availability id=%s created with %d slots", window.ID, len(slots))

	return models.FromDomainAvailability(window, slots), nil
}

// ExecuteBulk создает окна по очереди
// Ошибка одного элемента не откатывает уже созданные окна
func (uc *UseCase) ExecuteBulk(ctx context.Context, reqs []*Request) ([]BulkItemResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one availability is required", ErrInvalidInput)
	}
	if len(reqs) > domain.MaxBulkItems {
		return nil, fmt.Errorf("%w: at most %d availabilities per request", ErrInvalidInput, domain.MaxBulkItems)
	}

	uc.logger.Info("CreateAvailabilityBulk: %d items", len(reqs))

	results := make([]BulkItemResult, 0, len(reqs))
	failed := 0
	for i, req := range reqs {
		if req == nil {
			results = append(results, BulkItemResult{Index: i, Err: fmt.Errorf("%w: empty item", ErrInvalidInput)})
			failed++
			continue
		}

		resp, err := uc.Execute(ctx, req)
		results = append(results, BulkItemResult{Index: i, Result: resp, Err: err})
		if err != nil {
			failed++
		}
	}

	uc.logger.Info("CreateAvailabilityBulk: %d created, %d failed", len(reqs)-failed, failed)
	return results, nil
}

func (uc *UseCase) resolveProvider(ctx context.Context, window *domain.AvailabilityWindow) error {
	if uc.providerClient == nil {
		return nil
	}

	provider, err := uc.providerClient.GetProviderWithGracefulDegradation(ctx, window.ProviderID)
	if err != nil {
		if errors.Is(err, providerservice.ErrProviderNotFound) {
			uc.logger.Warn("CreateAvailability: provider id=%s not found", window.ProviderID)
			return fmt.Errorf("%w: id=%s", ErrProviderNotFound, window.ProviderID)
		}
		uc.logger.Warn("CreateAvailability: continuing without provider data: %v", err)
		return nil
	}

	if window.Specialization == nil && provider.Specialization != nil {
		specialization := *provider.Specialization
		window.Specialization = &specialization
	}
	return nil
}
