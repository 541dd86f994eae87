package templates

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов
type TemplateRepository interface {
	Create(ctx context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error)
	GetByProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.AvailabilityTemplate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
