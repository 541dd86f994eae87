package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// CreateTemplateRequest запрос на создание шаблона
type CreateTemplateRequest struct {
	ProviderID        uuid.UUID
	Name              string
	DaysOfWeek        []domain.Weekday
	StartTime         types.TimeString
	EndTime           types.TimeString
	SlotDuration      int
	BreakDuration     int
	Timezone          string
	RecurrencePattern *string
}

// ToDomain конвертирует request в domain модель
func (r *CreateTemplateRequest) ToDomain() *domain.AvailabilityTemplate {
	days := make([]domain.Weekday, len(r.DaysOfWeek))
	copy(days, r.DaysOfWeek)

	return &domain.AvailabilityTemplate{
		ProviderID:           r.ProviderID,
		Name:                 r.Name,
		DaysOfWeek:           days,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		SlotDurationMinutes:  r.SlotDuration,
		BreakDurationMinutes: r.BreakDuration,
		Timezone:             r.Timezone,
		RecurrencePattern:    r.RecurrencePattern,
	}
}

// TemplateResponse шаблон в ответе API
type TemplateResponse struct {
	ID                uuid.UUID `json:"id"`
	ProviderID        uuid.UUID `json:"providerId"`
	Name              string    `json:"name"`
	DaysOfWeek        []string  `json:"daysOfWeek"`
	StartTime         string    `json:"startTime"`
	EndTime           string    `json:"endTime"`
	SlotDuration      int       `json:"slotDuration"`
	BreakDuration     int       `json:"breakDuration"`
	Timezone          string    `json:"timezone"`
	RecurrencePattern *string   `json:"recurrencePattern,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// FromDomain конвертирует domain шаблон в response
func FromDomain(t *domain.AvailabilityTemplate) *TemplateResponse {
	days := make([]string, 0, len(t.DaysOfWeek))
	for _, d := range t.DaysOfWeek {
		days = append(days, string(d))
	}

	return &TemplateResponse{
		ID:                t.ID,
		ProviderID:        t.ProviderID,
		Name:              t.Name,
		DaysOfWeek:        days,
		StartTime:         t.StartTime.String(),
		EndTime:           t.EndTime.String(),
		SlotDuration:      t.SlotDurationMinutes,
		BreakDuration:     t.BreakDurationMinutes,
		Timezone:          t.Timezone,
		RecurrencePattern: t.RecurrencePattern,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
