package windowdef

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("windowdef: invalid input data")

	// ErrInvalidWindow возвращается при некорректных датах, времени или длительностях окна
	ErrInvalidWindow = errors.New("windowdef: invalid availability window")

	// ErrInvalidTimezone возвращается, когда часовой пояс не распознан
	ErrInvalidTimezone = errors.New("windowdef: invalid timezone")
)
