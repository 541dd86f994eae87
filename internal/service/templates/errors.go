package templates

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("templates: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("templates: store unavailable")
)
