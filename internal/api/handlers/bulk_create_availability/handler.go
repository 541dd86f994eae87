package bulk_create_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	createAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "ошибка валидации запроса"
	msgInvalidItem        = "некорректный элемент пакета"
)

type Handler struct {
	useCase BulkCreateUseCase
	logger  Logger
}

func NewHandler(useCase BulkCreateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/provider/availability/bulk
// Каждый элемент создается независимо, статус ответа 200 даже при частичных ошибках
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BulkCreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(req); err != nil {
		h.logger.Warn("POST /availability/bulk - Validation failed: %v", err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, handlers.FormatValidationError(err))
		return
	}

	reqs := make([]*createAvailability.Request, 0, len(req.Availabilities))
	for i := range req.Availabilities {
		def, err := req.Availabilities[i].ToDefinition()
		if err != nil {
			h.logger.Warn("POST /availability/bulk - Item %d: %v", i, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidItem, err.Error())
			return
		}
		reqs = append(reqs, &createAvailability.Request{Definition: def})
	}

	results, err := h.useCase.ExecuteBulk(r.Context(), reqs)
	if err != nil {
		if errors.Is(err, createAvailability.ErrInvalidInput) {
			h.logger.Warn("POST /availability/bulk - Invalid input: %v", err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, err.Error())
			return
		}
		h.logger.Error("POST /availability/bulk - Failed to create availabilities: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := FromUseCaseResults(results)

	h.logger.Info("POST /availability/bulk - Processed %d items: created=%d, failed=%d",
		len(results), response.Created, response.Failed)
	handlers.RespondJSON(w, http.StatusOK, response)
}
