package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilityWindow, error)
	GetActiveByProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.AvailabilityWindow, error)
	GetActiveByProviderInDateRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*domain.AvailabilityWindow, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByAvailabilityID(ctx context.Context, availabilityID uuid.UUID) ([]*domain.Slot, error)
	GetByAvailabilityIDs(ctx context.Context, availabilityIDs []uuid.UUID) ([]*domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
