package list_templates

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

const msgInvalidProviderID = "некорректный ID провайдера"

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

// Handle GET /api/v1/provider/availability/templates?providerId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := uuid.Parse(r.URL.Query().Get("providerId"))
	if err != nil {
		h.logger.Warn("GET /availability/templates - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.ListByProvider(r.Context(), providerID)
	if err != nil {
		h.logger.Error("GET /availability/templates - Failed to list templates: provider_id=%s, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/templates - Found %d templates for provider_id=%s", len(result), providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
