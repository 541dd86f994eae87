package slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных фильтрах поиска
	ErrInvalidInput = errors.New("slots: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("slots: store unavailable")
)
