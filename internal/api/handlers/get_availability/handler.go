package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

const (
	msgInvalidAvailabilityID = "некорректный ID окна доступности"
	msgNotFound              = "окно доступности не найдено"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/provider/availability/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.UUIDVar(r, "availabilityId")
	if err != nil {
		h.logger.Warn("GET /availability/{id} - Invalid availability ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAvailabilityID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAvailabilityNotFound):
			h.logger.Warn("GET /availability/{id} - Availability not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /availability/{id} - Failed to get availability: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/{id} - Availability retrieved: id=%s, slots=%d", id, result.SlotCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
