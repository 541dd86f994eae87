package update_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	updateAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/update_availability"
)

const (
	msgInvalidAvailabilityID = "некорректный ID окна доступности"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgValidationFailed      = "ошибка валидации запроса"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime           = "некорректный формат времени, ожидается HH:MM"
	msgInvalidWindow         = "некорректное окно доступности"
	msgInvalidTimezone       = "неизвестный часовой пояс"
	msgNotFound              = "окно доступности не найдено"
	msgInactive              = "окно доступности удалено и не может быть изменено"
	msgSlotOverlap           = "слоты пересекаются с существующими слотами провайдера"
)

type Handler struct {
	useCase UpdateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/provider/availability/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.UUIDVar(r, "availabilityId")
	if err != nil {
		h.logger.Warn("PUT /availability/{id} - Invalid availability ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAvailabilityID)
		return
	}

	var req handlers.WindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(req); err != nil {
		h.logger.Warn("PUT /availability/{id} - Validation failed: %v", err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, handlers.FormatValidationError(err))
		return
	}

	def, err := req.ToDefinition()
	if err != nil {
		h.logger.Warn("PUT /availability/{id} - Failed to parse request: %v", err)
		if errors.Is(err, handlers.ErrInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateAvailability.Request{AvailabilityID: id, Definition: def})
	if err != nil {
		switch {
		case errors.Is(err, updateAvailability.ErrAvailabilityNotFound):
			h.logger.Warn("PUT /availability/{id} - Availability not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateAvailability.ErrAvailabilityInactive):
			h.logger.Warn("PUT /availability/{id} - Availability inactive: id=%s", id)
			handlers.RespondConflict(w, msgInactive)

		case errors.Is(err, updateAvailability.ErrSlotOverlap):
			h.logger.Warn("PUT /availability/{id} - Slot overlap: id=%s: %v", id, err)
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgSlotOverlap, err.Error())

		case errors.Is(err, updateAvailability.ErrInvalidTimezone):
			h.logger.Warn("PUT /availability/{id} - Invalid timezone: %q", def.Timezone)
			handlers.RespondBadRequest(w, msgInvalidTimezone)

		case errors.Is(err, updateAvailability.ErrInvalidWindow), errors.Is(err, updateAvailability.ErrInvalidInput):
			h.logger.Warn("PUT /availability/{id} - Invalid window: id=%s: %v", id, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidWindow, err.Error())

		default:
			h.logger.Error("PUT /availability/{id} - Failed to update availability: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/{id} - Availability updated: id=%s, slots=%d", id, result.SlotCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
