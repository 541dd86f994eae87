package list_availability

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListByProvider(ctx context.Context, req *models.ListByProviderRequest) ([]*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
