package create_template

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/templates/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// CreateTemplateRequest HTTP request model
type CreateTemplateRequest struct {
	ProviderID        string   `json:"providerId" validate:"required,uuid"`
	Name              string   `json:"name" validate:"required,max=255"`
	DaysOfWeek        []string `json:"daysOfWeek" validate:"required,min=1,dive,oneof=MON TUE WED THU FRI SAT SUN"`
	StartTime         string   `json:"startTime" validate:"required"`
	EndTime           string   `json:"endTime" validate:"required"`
	SlotDuration      int      `json:"slotDuration" validate:"min=0"`
	BreakDuration     int      `json:"breakDuration" validate:"min=0"`
	Timezone          string   `json:"timezone" validate:"required"`
	RecurrencePattern *string  `json:"recurrencePattern,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateTemplateRequest) ToServiceRequest() (*models.CreateTemplateRequest, error) {
	providerID, err := uuid.Parse(r.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("providerId: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", handlers.ErrInvalidTime, err)
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", handlers.ErrInvalidTime, err)
	}

	days := make([]domain.Weekday, 0, len(r.DaysOfWeek))
	for _, d := range r.DaysOfWeek {
		days = append(days, domain.Weekday(d))
	}

	return &models.CreateTemplateRequest{
		ProviderID:        providerID,
		Name:              r.Name,
		DaysOfWeek:        days,
		StartTime:         startTime,
		EndTime:           endTime,
		SlotDuration:      r.SlotDuration,
		BreakDuration:     r.BreakDuration,
		Timezone:          r.Timezone,
		RecurrencePattern: r.RecurrencePattern,
	}, nil
}
