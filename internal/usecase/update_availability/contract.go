package update_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilityWindow, error)
	Update(ctx context.Context, w *domain.AvailabilityWindow) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	LockProvider(ctx context.Context, providerID uuid.UUID) error
	DeleteByAvailabilityID(ctx context.Context, availabilityID uuid.UUID) (int64, error)
	GetActiveByProviderInRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*domain.Slot, error)
	CreateBatch(ctx context.Context, slots []*domain.Slot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики use case
type Metrics interface {
	AddSlotsGenerated(n int)
	IncOverlapConflict(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
