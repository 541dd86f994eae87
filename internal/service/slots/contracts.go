package slots

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	SearchAvailable(ctx context.Context, criteria domain.SlotSearchCriteria) ([]*domain.Slot, error)
}

// SearchCache интерфейс кэша результатов поиска
type SearchCache interface {
	Get(ctx context.Context, criteria domain.SlotSearchCriteria, dest interface{}) (bool, error)
	Set(ctx context.Context, criteria domain.SlotSearchCriteria, value interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
