package bulk_create_availability

import (
	"context"

	createAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_availability"
)

type BulkCreateUseCase interface {
	ExecuteBulk(ctx context.Context, reqs []*createAvailability.Request) ([]createAvailability.BulkItemResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
