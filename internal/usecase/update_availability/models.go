package update_availability

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/windowdef"
)

// Request модель запроса на изменение окна доступности
// Определение окна заменяет текущее целиком
type Request struct {
	AvailabilityID uuid.UUID
	windowdef.Definition
}

// Validate проверяет ID окна и его новое определение
func (r *Request) Validate() error {
	if r.AvailabilityID == uuid.Nil {
		return fmt.Errorf("%w: availabilityId is required", ErrInvalidInput)
	}
	return r.Definition.Validate()
}

// Response измененное окно с новыми слотами
type Response = models.AvailabilityResponse
