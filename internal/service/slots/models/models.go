package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilityModels "github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
)

// SearchRequest фильтры поиска слотов; пустые поля не фильтруют
type SearchRequest struct {
	Specialization  *string
	LocationType    *domain.LocationType
	AppointmentType *domain.AppointmentType
	From            *time.Time
	To              *time.Time
	MinPrice        *float64
	MaxPrice        *float64
}

// ToDomainCriteria конвертирует request в domain критерии
func (r *SearchRequest) ToDomainCriteria() domain.SlotSearchCriteria {
	c := domain.SlotSearchCriteria{
		Specialization:  r.Specialization,
		LocationType:    r.LocationType,
		AppointmentType: r.AppointmentType,
		MinPrice:        r.MinPrice,
		MaxPrice:        r.MaxPrice,
	}
	if r.From != nil {
		from := r.From.UTC()
		c.From = &from
	}
	if r.To != nil {
		to := r.To.UTC()
		c.To = &to
	}
	return c
}

// SearchResponse найденные слоты
type SearchResponse struct {
	Total int                               `json:"total"`
	Slots []availabilityModels.SlotResponse `json:"slots"`
}
