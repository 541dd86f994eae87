package bulk_create_availability

import (
	"errors"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	createAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_availability"
)

const (
	statusCreated = "CREATED"
	statusFailed  = "FAILED"
)

// BulkCreateRequest HTTP request model
type BulkCreateRequest struct {
	Availabilities []handlers.WindowRequest `json:"availabilities" validate:"required,min=1,max=100,dive"`
}

// ItemResult результат по одному окну
type ItemResult struct {
	Index        int                          `json:"index"`
	Status       string                       `json:"status"`
	Availability *createAvailability.Response `json:"availability,omitempty"`
	Error        string                       `json:"error,omitempty"`
}

// BulkCreateResponse HTTP response model
type BulkCreateResponse struct {
	Created int          `json:"created"`
	Failed  int          `json:"failed"`
	Results []ItemResult `json:"results"`
}

// FromUseCaseResults конвертирует результаты use case в HTTP response
func FromUseCaseResults(results []createAvailability.BulkItemResult) *BulkCreateResponse {
	resp := &BulkCreateResponse{Results: make([]ItemResult, 0, len(results))}
	for _, r := range results {
		item := ItemResult{Index: r.Index}
		if r.Err != nil {
			item.Status = statusFailed
			item.Error = itemErrorMessage(r.Err)
			resp.Failed++
		} else {
			item.Status = statusCreated
			item.Availability = r.Result
			resp.Created++
		}
		resp.Results = append(resp.Results, item)
	}
	return resp
}

func itemErrorMessage(err error) string {
	switch {
	case errors.Is(err, createAvailability.ErrStoreUnavailable):
		return "внутренняя ошибка сервера"
	case errors.Is(err, createAvailability.ErrProviderNotFound):
		return "провайдер не найден"
	default:
		return err.Error()
	}
}
