package create_availability

import (
	"errors"

	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/windowdef"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = windowdef.ErrInvalidInput

	// ErrInvalidWindow возвращается при некорректных датах, времени или длительностях
	ErrInvalidWindow = windowdef.ErrInvalidWindow

	// ErrInvalidTimezone возвращается, когда часовой пояс не распознан
	ErrInvalidTimezone = windowdef.ErrInvalidTimezone

	// ErrProviderNotFound возвращается, когда провайдер не найден в ProviderService
	ErrProviderNotFound = errors.New("create_availability: provider not found")

	// ErrSlotOverlap возвращается, когда новый слот пересекается с активным слотом провайдера
	ErrSlotOverlap = errors.New("create_availability: slot overlaps an existing available slot")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("create_availability: store unavailable")
)
