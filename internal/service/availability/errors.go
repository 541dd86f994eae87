package availability

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда окно доступности не найдено
	ErrAvailabilityNotFound = errors.New("availability: availability not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("availability: store unavailable")
)
