package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/windowdef"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("handlers: invalid date format")

	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("handlers: invalid time format")
)

// WindowRequest HTTP модель определения окна доступности
type WindowRequest struct {
	ProviderID        string   `json:"providerId" validate:"required,uuid"`
	StartDate         string   `json:"startDate" validate:"required"` // "2025-10-15"
	EndDate           string   `json:"endDate" validate:"required"`   // "2025-10-20"
	StartTime         string   `json:"startTime" validate:"required"` // "09:00"
	EndTime           string   `json:"endTime" validate:"required"`   // "17:00"
	Timezone          string   `json:"timezone" validate:"required"`
	SlotDuration      int      `json:"slotDuration" validate:"required,min=15,max=240"`
	BreakDuration     int      `json:"breakDuration" validate:"min=0,max=120"`
	RecurrencePattern *string  `json:"recurrencePattern,omitempty"`
	AppointmentType   *string  `json:"appointmentType,omitempty" validate:"omitempty,oneof=CONSULTATION EMERGENCY TELEMEDICINE"`
	LocationType      *string  `json:"locationType,omitempty" validate:"omitempty,oneof=CLINIC HOME VIRTUAL"`
	Specialization    *string  `json:"specialization,omitempty" validate:"omitempty,max=255"`
	Price             *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	Requirements      *string  `json:"requirements,omitempty" validate:"omitempty,max=1000"`
}

// ToDefinition парсит даты и время и собирает определение окна
func (r *WindowRequest) ToDefinition() (windowdef.Definition, error) {
	providerID, err := uuid.Parse(r.ProviderID)
	if err != nil {
		return windowdef.Definition{}, fmt.Errorf("providerId: %w", err)
	}

	startDate, err := ParseDate(r.StartDate)
	if err != nil {
		return windowdef.Definition{}, err
	}
	endDate, err := ParseDate(r.EndDate)
	if err != nil {
		return windowdef.Definition{}, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return windowdef.Definition{}, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return windowdef.Definition{}, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	def := windowdef.Definition{
		ProviderID:        providerID,
		StartDate:         startDate,
		EndDate:           endDate,
		StartTime:         startTime,
		EndTime:           endTime,
		Timezone:          r.Timezone,
		SlotDuration:      r.SlotDuration,
		BreakDuration:     r.BreakDuration,
		RecurrencePattern: r.RecurrencePattern,
		Specialization:    r.Specialization,
		Price:             r.Price,
		Requirements:      r.Requirements,
	}
	if r.AppointmentType != nil {
		at := domain.AppointmentType(*r.AppointmentType)
		def.AppointmentType = &at
	}
	if r.LocationType != nil {
		lt := domain.LocationType(*r.LocationType)
		def.LocationType = &lt
	}
	return def, nil
}

// ParseDate парсит дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}
