package create_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	LockProvider(ctx context.Context, providerID uuid.UUID) error
	GetActiveByProviderInRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*domain.Slot, error)
	CreateBatch(ctx context.Context, slots []*domain.Slot) error
}

// ProviderServiceClient интерфейс клиента для ProviderService
type ProviderServiceClient interface {
	GetProviderWithGracefulDegradation(ctx context.Context, providerID uuid.UUID) (*providerservice.Provider, error)
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
