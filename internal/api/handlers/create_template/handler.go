package create_template

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/templates"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "ошибка валидации запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidTemplate    = "некорректный шаблон"
)

type Handler struct {
	service TemplateService
	logger  Logger
}

func NewHandler(service TemplateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/provider/availability/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/templates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(req); err != nil {
		h.logger.Warn("POST /availability/templates - Validation failed: %v", err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, handlers.FormatValidationError(err))
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /availability/templates - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, templates.ErrInvalidInput):
			h.logger.Warn("POST /availability/templates - Invalid template: %v", err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidTemplate, err.Error())
		default:
			h.logger.Error("POST /availability/templates - Failed to create template: provider_id=%s, error=%v",
				serviceReq.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/templates - Template created: id=%s, provider_id=%s", result.ID, result.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
