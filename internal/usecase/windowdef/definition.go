// Package windowdef holds the availability window definition shared by the
// create and update use cases.
package windowdef

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/scheduling"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Definition описание окна доступности из запроса
type Definition struct {
	ProviderID        uuid.UUID        // ID провайдера
	StartDate         time.Time        // Первая дата (включительно)
	EndDate           time.Time        // Последняя дата (включительно)
	StartTime         types.TimeString // Начало дня, локальное время
	EndTime           types.TimeString // Конец дня, локальное время
	Timezone          string           // IANA часовой пояс
	SlotDuration      int              // Длительность слота в минутах
	BreakDuration     int              // Перерыв между слотами в минутах
	RecurrencePattern *string          // Сохраняется, не интерпретируется

	// Атрибуты слотов (опционально)
	AppointmentType *domain.AppointmentType
	LocationType    *domain.LocationType
	Specialization  *string
	Price           *float64
	Requirements    *string
}

// Validate проверяет определение окна
func (d *Definition) Validate() error {
	if d.ProviderID == uuid.Nil {
		return fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}

	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidWindow)
	}
	if d.StartDate.After(d.EndDate) {
		return fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidWindow)
	}

	if err := d.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidWindow, err)
	}
	if err := d.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidWindow, err)
	}
	if !d.StartTime.IsBefore(d.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidWindow)
	}

	if d.SlotDuration < domain.MinSlotDurationMinutes || d.SlotDuration > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDuration must be between %d and %d minutes", ErrInvalidWindow,
			domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if d.BreakDuration < domain.MinBreakDurationMinutes || d.BreakDuration > domain.MaxBreakDurationMinutes {
		return fmt.Errorf("%w: breakDuration must be between %d and %d minutes", ErrInvalidWindow,
			domain.MinBreakDurationMinutes, domain.MaxBreakDurationMinutes)
	}

	if d.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidTimezone)
	}
	if _, err := time.LoadLocation(d.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, d.Timezone)
	}

	if d.AppointmentType != nil && !d.AppointmentType.Valid() {
		return fmt.Errorf("%w: unknown appointmentType %q", ErrInvalidInput, *d.AppointmentType)
	}
	if d.LocationType != nil && !d.LocationType.Valid() {
		return fmt.Errorf("%w: unknown locationType %q", ErrInvalidInput, *d.LocationType)
	}
	if d.Price != nil && *d.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if d.Requirements != nil && len(*d.Requirements) > domain.MaxRequirementsLength {
		return fmt.Errorf("%w: requirements exceed %d characters", ErrInvalidInput, domain.MaxRequirementsLength)
	}

	return nil
}

// ToWindow создает новое активное окно из определения
func (d *Definition) ToWindow() *domain.AvailabilityWindow {
	w := &domain.AvailabilityWindow{
		ProviderID: d.ProviderID,
		IsActive:   true,
	}
	d.ApplyTo(w)
	return w
}

// ApplyTo перезаписывает поля окна значениями из определения
// ID, провайдер и флаг активности не меняются
func (d *Definition) ApplyTo(w *domain.AvailabilityWindow) {
	w.StartDate = d.StartDate
	w.EndDate = d.EndDate
	w.StartTime = d.StartTime
	w.EndTime = d.EndTime
	w.Timezone = d.Timezone
	w.SlotDurationMinutes = d.SlotDuration
	w.BreakDurationMinutes = d.BreakDuration
	w.RecurrencePattern = d.RecurrencePattern

	w.AppointmentType = domain.DefaultAppointmentType
	if d.AppointmentType != nil {
		w.AppointmentType = *d.AppointmentType
	}
	w.LocationType = domain.DefaultLocationType
	if d.LocationType != nil {
		w.LocationType = *d.LocationType
	}
	w.Specialization = d.Specialization
	w.Price = d.Price
	w.Requirements = d.Requirements
}

// Generate разворачивает окно в слоты, приводя ошибки генератора к ошибкам пакета
func Generate(w *domain.AvailabilityWindow) ([]scheduling.Candidate, error) {
	candidates, err := scheduling.Generate(w)
	switch {
	case err == nil:
		return candidates, nil
	case errors.Is(err, scheduling.ErrInvalidTimezone):
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimezone, err)
	case errors.Is(err, scheduling.ErrInvalidWindow):
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	default:
		return nil, err
	}
}
