package providerservice

import "github.com/google/uuid"

// Provider модель провайдера из ProviderService
type Provider struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization *string   `json:"specialization,omitempty"`
	Active         bool      `json:"active"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
