package search_slots

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "ошибка валидации запроса"
	msgInvalidCriteria    = "некорректные параметры поиска"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/provider/availability/search
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SearchSlotsRequest
	// Пустое тело означает поиск без фильтров
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /availability/search - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(req); err != nil {
		h.logger.Warn("POST /availability/search - Validation failed: %v", err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, handlers.FormatValidationError(err))
		return
	}

	result, err := h.service.Search(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /availability/search - Invalid criteria: %v", err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidCriteria, err.Error())
		default:
			h.logger.Error("POST /availability/search - Failed to search slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/search - Found %d slots", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
