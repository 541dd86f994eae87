package update_availability

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

	// ErrAvailabilityNotFound возвращается, когда окно доступности не найдено
	ErrAvailabilityNotFound = errors.New("update_availability: availability not found")

	// ErrAvailabilityInactive возвращается при попытке изменить удаленное окно
	ErrAvailabilityInactive = errors.New("update_availability: availability is inactive")

	// ErrSlotOverlap возвращается, когда новый слот пересекается с активным слотом провайдера
	ErrSlotOverlap = errors.New("update_availability: slot overlaps an existing available slot")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("update_availability: store unavailable")
)
