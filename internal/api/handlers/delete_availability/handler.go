package delete_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	deleteAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/delete_availability"
)

const (
	msgInvalidAvailabilityID = "некорректный ID окна доступности"
	msgNotFound              = "окно доступности не найдено"
	msgHasBookedSlots        = "у окна есть забронированные слоты, удаление невозможно"
)

type Handler struct {
	useCase DeleteAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase DeleteAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/provider/availability/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.UUIDVar(r, "availabilityId")
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid availability ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAvailabilityID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, deleteAvailability.ErrAvailabilityNotFound):
			h.logger.Warn("DELETE /availability/{id} - Availability not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, deleteAvailability.ErrHasBookedSlots):
			h.logger.Warn("DELETE /availability/{id} - Has booked slots: id=%s", id)
			handlers.RespondConflict(w, msgHasBookedSlots)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete availability: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Availability deleted: id=%s, soft_deleted_slots=%d",
		id, result.SoftDeletedSlots)
	handlers.RespondJSON(w, http.StatusOK, result)
}
