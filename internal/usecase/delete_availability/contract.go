package delete_availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilityWindow, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	LockProvider(ctx context.Context, providerID uuid.UUID) error
	GetByAvailabilityIDAndStatus(ctx context.Context, availabilityID uuid.UUID, status domain.SlotStatus) ([]*domain.Slot, error)
	SoftDeleteByAvailabilityID(ctx context.Context, availabilityID uuid.UUID) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
