package delete_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
)

// UseCase use case для удаления окна доступности
type UseCase struct {
	availabilityRepo AvailabilityRepository
	slotRepo         SlotRepository
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		slotRepo:         slotRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute мягко удаляет окно: слоты помечаются удаленными, окно деактивируется
// Если у окна есть забронированные слоты, ничего не меняется
func (uc *UseCase) Execute(ctx context.Context, id uuid.UUID) (*Response, error) {
	uc.logger.Info("DeleteAvailability: id=%s", id)

	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: availabilityId is required", ErrInvalidInput)
	}

	resp := &Response{ID: id}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		window, err := uc.availabilityRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
				return fmt.Errorf("%w: id=%s", ErrAvailabilityNotFound, id)
			}
			return fmt.Errorf("%w: failed to get availability: %w", ErrStoreUnavailable, err)
		}

		if !window.IsActive {
			resp.AlreadyInactive = true
			return nil
		}

		if err := uc.slotRepo.LockProvider(txCtx, window.ProviderID); err != nil {
			return fmt.Errorf("%w: failed to lock provider: %w", ErrStoreUnavailable, err)
		}

		booked, err := uc.slotRepo.GetByAvailabilityIDAndStatus(txCtx, id, domain.SlotStatusBooked)
		if err != nil {
			return fmt.Errorf("%w: failed to get booked slots: %w", ErrStoreUnavailable, err)
		}
		if len(booked) > 0 {
			return fmt.Errorf("%w: %d booked", ErrHasBookedSlots, len(booked))
		}

		affected, err := uc.slotRepo.SoftDeleteByAvailabilityID(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: failed to soft delete slots: %w", ErrStoreUnavailable, err)
		}
		resp.SoftDeletedSlots = affected

		if err := uc.availabilityRepo.SetActive(txCtx, id, false); err != nil {
			return fmt.Errorf("%w: failed to deactivate availability: %w", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAvailabilityNotFound), errors.Is(err, ErrHasBookedSlots):
			uc.logger.Warn("DeleteAvailability: %v", err)
			return nil, err
		case errors.Is(err, ErrStoreUnavailable):
			uc.logger.Error("DeleteAvailability: transaction failed for id=%s: %v", id, err)
			return nil, err
		default:
			uc.logger.Error("DeleteAvailability: transaction failed for id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	}

	if resp.AlreadyInactive {
		uc.logger.Info("DeleteAvailability: availability id=%s is already inactive", id)
	} else {
		uc.logger.Info("DeleteAvailability: availability id=%s deleted, %d slots soft deleted", id, resp.SoftDeletedSlots)
	}
	return resp, nil
}
