package list_templates

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/templates/models"
)

type TemplateService interface {
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
