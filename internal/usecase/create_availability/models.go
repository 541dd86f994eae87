package create_availability

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/windowdef"
)

// Request модель запроса на создание окна доступности
type Request struct {
	windowdef.Definition
}

// Response созданное окно со слотами
type Response = models.AvailabilityResponse

// BulkItemResult результат создания одного окна из пакета
// Ровно одно из полей Result и Err заполнено
type BulkItemResult struct {
	Index  int
	Result *Response
	Err    error
}
