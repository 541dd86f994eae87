package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модели

// ListByProviderRequest запрос на получение окон провайдера
type ListByProviderRequest struct {
	ProviderID uuid.UUID  `json:"providerId"`
	StartDate  *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate    *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListByProviderRequest) ToDomainFilter() domain.AvailabilityFilter {
	return domain.AvailabilityFilter{
		ProviderID: r.ProviderID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}
}

// Response модели

// SlotResponse слот в ответе API; время в UTC
type SlotResponse struct {
	ID              uuid.UUID `json:"id"`
	AvailabilityID  uuid.UUID `json:"availabilityId"`
	ProviderID      uuid.UUID `json:"providerId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Status          string    `json:"status"`
	AppointmentType string    `json:"appointmentType"`
	LocationType    string    `json:"locationType"`
	Specialization  *string   `json:"specialization,omitempty"`
	Price           *float64  `json:"price,omitempty"`
	Requirements    *string   `json:"requirements,omitempty"`
	IsDeleted       bool      `json:"isDeleted"`
}

// AvailabilityResponse окно доступности вместе со слотами
type AvailabilityResponse struct {
	ID                uuid.UUID      `json:"id"`
	ProviderID        uuid.UUID      `json:"providerId"`
	StartDate         string         `json:"startDate"`
	EndDate           string         `json:"endDate"`
	StartTime         string         `json:"startTime"`
	EndTime           string         `json:"endTime"`
	Timezone          string         `json:"timezone"`
	SlotDuration      int            `json:"slotDuration"`
	BreakDuration     int            `json:"breakDuration"`
	RecurrencePattern *string        `json:"recurrencePattern,omitempty"`
	IsActive          bool           `json:"isActive"`
	AppointmentType   string         `json:"appointmentType"`
	LocationType      string         `json:"locationType"`
	Specialization    *string        `json:"specialization,omitempty"`
	Price             *float64       `json:"price,omitempty"`
	Requirements      *string        `json:"requirements,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	SlotCount         int            `json:"slotCount"`
	Slots             []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain слот в response
func FromDomainSlot(s *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:              s.ID,
		AvailabilityID:  s.AvailabilityID,
		ProviderID:      s.ProviderID,
		StartTime:       s.Start.UTC(),
		EndTime:         s.End.UTC(),
		Status:          string(s.Status),
		AppointmentType: string(s.AppointmentType),
		LocationType:    string(s.LocationType),
		Specialization:  s.Specialization,
		Price:           s.Price,
		Requirements:    s.Requirements,
		IsDeleted:       s.IsDeleted,
	}
}

// FromDomainSlots конвертирует список слотов
func FromDomainSlots(slots []*domain.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, FromDomainSlot(s))
	}
	return out
}

// FromDomainAvailability конвертирует окно и его слоты в response
func FromDomainAvailability(w *domain.AvailabilityWindow, slots []*domain.Slot) *AvailabilityResponse {
	return &AvailabilityResponse{
		ID:                w.ID,
		ProviderID:        w.ProviderID,
		StartDate:         w.StartDate.Format(domain.DateFormat),
		EndDate:           w.EndDate.Format(domain.DateFormat),
		StartTime:         w.StartTime.String(),
		EndTime:           w.EndTime.String(),
		Timezone:          w.Timezone,
		SlotDuration:      w.SlotDurationMinutes,
		BreakDuration:     w.BreakDurationMinutes,
		RecurrencePattern: w.RecurrencePattern,
		IsActive:          w.IsActive,
		AppointmentType:   string(w.AppointmentType),
		LocationType:      string(w.LocationType),
		Specialization:    w.Specialization,
		Price:             w.Price,
		Requirements:      w.Requirements,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
		SlotCount:         len(slots),
		Slots:             FromDomainSlots(slots),
	}
}
