package update_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/scheduling"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/windowdef"
)

const operation = "update"

// UseCase use case для изменения окна доступности
type UseCase struct {
	availabilityRepo AvailabilityRepository
	slotRepo         SlotRepository
	txManager        TransactionManager
	validateOverlap  bool
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// validateOverlap включает проверку пересечений с другими окнами провайдера
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	validateOverlap bool,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		slotRepo:         slotRepo,
		txManager:        txManager,
		validateOverlap:  validateOverlap,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute перезаписывает окно и пересоздает его слоты
// Все прежние слоты окна удаляются физически, в том числе забронированные
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAvailability: id=%s, dates=%s..%s, time=%s-%s, tz=%s, slot=%d, break=%d",
		req.AvailabilityID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.StartTime, req.EndTime, req.Timezone, req.SlotDuration, req.BreakDuration)

	if err := req.Validate(); err != nil {
		uc.logger.Warn("UpdateAvailability: validation failed for id=%s: %v", req.AvailabilityID, err)
		return nil, err
	}

	candidates, err := windowdef.Generate(req.ToWindow())
	if err != nil {
		uc.logger.Warn("UpdateAvailability: slot generation failed for id=%s: %v", req.AvailabilityID, err)
		return nil, err
	}

	var (
		window *domain.AvailabilityWindow
		slots  []*domain.Slot
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.availabilityRepo.GetByID(txCtx, req.AvailabilityID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
				return fmt.Errorf("%w: id=%s", ErrAvailabilityNotFound, req.AvailabilityID)
			}
			return fmt.Errorf("%w: failed to get availability: %w", ErrStoreUnavailable, err)
		}
		if !current.IsActive {
			return fmt.Errorf("%w: id=%s", ErrAvailabilityInactive, current.ID)
		}
		if current.ProviderID != req.ProviderID {
			return fmt.Errorf("%w: providerId does not match availability owner", ErrInvalidInput)
		}

		if err := uc.slotRepo.LockProvider(txCtx, current.ProviderID); err != nil {
			return fmt.Errorf("%w: failed to lock provider: %w", ErrStoreUnavailable, err)
		}

		deleted, err := uc.slotRepo.DeleteByAvailabilityID(txCtx, current.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to delete slots: %w", ErrStoreUnavailable, err)
		}
		uc.logger.Info("UpdateAvailability: removed %d old slots of id=%s", deleted, current.ID)

		req.ApplyTo(current)

		if uc.validateOverlap {
			if from, to, ok := scheduling.Span(candidates); ok {
				existing, err := uc.slotRepo.GetActiveByProviderInRange(txCtx, current.ProviderID, from, to)
				if err != nil {
					return fmt.Errorf("%w: failed to get existing slots: %w", ErrStoreUnavailable, err)
				}
				if overlap, found := scheduling.FindOverlap(candidates, existing); found {
					return fmt.Errorf("%w: %s", ErrSlotOverlap, overlap)
				}
			}
		}

		if err := uc.availabilityRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("%w: failed to update availability: %w", ErrStoreUnavailable, err)
		}

		slots = scheduling.ToSlots(candidates, current.SlotTemplate())
		if err := uc.slotRepo.CreateBatch(txCtx, slots); err != nil {
			return fmt.Errorf("%w: failed to create slots: %w", ErrStoreUnavailable, err)
		}

		window = current
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotOverlap):
			if uc.metrics != nil {
				uc.metrics.IncOverlapConflict(operation)
			}
			uc.logger.Warn("UpdateAvailability: id=%s: %v", req.AvailabilityID, err)
			return nil, err
		case errors.Is(err, ErrAvailabilityNotFound), errors.Is(err, ErrAvailabilityInactive), errors.Is(err, ErrInvalidInput):
			uc.logger.Warn("UpdateAvailability: %v", err)
			return nil, err
		case errors.Is(err, ErrStoreUnavailable):
			uc.logger.Error("UpdateAvailability: transaction failed for id=%s: %v", req.AvailabilityID, err)
			return nil, err
		default:
			uc.logger.Error("UpdateAvailability: transaction failed for id=%s: %v", req.AvailabilityID, err)
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.AddSlotsGenerated(len(slots))
	}
	uc.logger.Info("UpdateAvailability: availability id=%s updated with %d slots", window.ID, len(slots))

	return models.FromDomainAvailability(window, slots), nil
}
