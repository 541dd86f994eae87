package delete_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delete_availability: invalid input data")

	// ErrAvailabilityNotFound возвращается, когда окно доступности не найдено
	ErrAvailabilityNotFound = errors.New("delete_availability: availability not found")

	// ErrHasBookedSlots возвращается, когда у окна есть забронированные слоты
	ErrHasBookedSlots = errors.New("delete_availability: availability has booked slots")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("delete_availability: store unavailable")
)
