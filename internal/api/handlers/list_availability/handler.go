package list_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod     = "некорректный период: нужны обе даты, startDate не позже endDate"
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

// Handle GET /api/v1/provider/availability?providerId=&startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	providerID, err := uuid.Parse(query.Get("providerId"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	req := &models.ListByProviderRequest{ProviderID: providerID}

	if s := query.Get("startDate"); s != "" {
		d, err := handlers.ParseDate(s)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &d
	}
	if s := query.Get("endDate"); s != "" {
		d, err := handlers.ParseDate(s)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &d
	}

	result, err := h.service.ListByProvider(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: provider_id=%s: %v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
		default:
			h.logger.Error("GET /availability - Failed to list availability: provider_id=%s, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Found %d windows for provider_id=%s", len(result), providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
