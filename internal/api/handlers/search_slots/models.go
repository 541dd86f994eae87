package search_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots/models"
)

// SearchSlotsRequest HTTP request model; все поля необязательны
type SearchSlotsRequest struct {
	Specialization  *string    `json:"specialization,omitempty"`
	LocationType    *string    `json:"locationType,omitempty" validate:"omitempty,oneof=CLINIC HOME VIRTUAL"`
	AppointmentType *string    `json:"appointmentType,omitempty" validate:"omitempty,oneof=CONSULTATION EMERGENCY TELEMEDICINE"`
	StartTime       *time.Time `json:"startTime,omitempty"` // RFC3339
	EndTime         *time.Time `json:"endTime,omitempty"`   // RFC3339
	MinPrice        *float64   `json:"minPrice,omitempty" validate:"omitempty,min=0"`
	MaxPrice        *float64   `json:"maxPrice,omitempty" validate:"omitempty,min=0"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SearchSlotsRequest) ToServiceRequest() *models.SearchRequest {
	req := &models.SearchRequest{
		Specialization: r.Specialization,
		From:           r.StartTime,
		To:             r.EndTime,
		MinPrice:       r.MinPrice,
		MaxPrice:       r.MaxPrice,
	}
	if r.LocationType != nil {
		lt := domain.LocationType(*r.LocationType)
		req.LocationType = &lt
	}
	if r.AppointmentType != nil {
		at := domain.AppointmentType(*r.AppointmentType)
		req.AppointmentType = &at
	}
	return req
}
