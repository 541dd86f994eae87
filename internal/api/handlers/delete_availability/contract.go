package delete_availability

import (
	"context"

	"github.com/google/uuid"

	deleteAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/delete_availability"
)

type DeleteAvailabilityUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) (*deleteAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
