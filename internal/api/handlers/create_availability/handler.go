package create_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	createAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "ошибка валидации запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidWindow      = "некорректное окно доступности"
	msgInvalidTimezone    = "неизвестный часовой пояс"
	msgProviderNotFound   = "провайдер не найден"
	msgSlotOverlap        = "слоты пересекаются с существующими слотами провайдера"
)

type Handler struct {
	useCase CreateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CreateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/provider/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req handlers.WindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(req); err != nil {
		h.logger.Warn("POST /availability - Validation failed: %v", err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, handlers.FormatValidationError(err))
		return
	}

	def, err := req.ToDefinition()
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse request: %v", err)
		if errors.Is(err, handlers.ErrInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createAvailability.Request{Definition: def})
	if err != nil {
		switch {
		case errors.Is(err, createAvailability.ErrSlotOverlap):
			h.logger.Warn("POST /availability - Slot overlap: provider_id=%s: %v", def.ProviderID, err)
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgSlotOverlap, err.Error())

		case errors.Is(err, createAvailability.ErrProviderNotFound):
			h.logger.Warn("POST /availability - Provider not found: provider_id=%s", def.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createAvailability.ErrInvalidTimezone):
			h.logger.Warn("POST /availability - Invalid timezone: %q", def.Timezone)
			handlers.RespondBadRequest(w, msgInvalidTimezone)

		case errors.Is(err, createAvailability.ErrInvalidWindow), errors.Is(err, createAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid window: provider_id=%s: %v", def.ProviderID, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidWindow, err.Error())

		default:
			h.logger.Error("POST /availability - Failed to create availability: provider_id=%s, error=%v", def.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Availability created: id=%s, provider_id=%s, slots=%d",
		result.ID, result.ProviderID, result.SlotCount)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
