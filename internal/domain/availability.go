package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// AvailabilityWindow represents a provider's recurring availability over a date range.
// Slots are generated for every date in [StartDate, EndDate] between StartTime and EndTime,
// interpreted in Timezone.
type AvailabilityWindow struct {
	ID                   uuid.UUID
	ProviderID           uuid.UUID
	StartDate            time.Time // calendar date, time part ignored
	EndDate              time.Time // inclusive
	StartTime            types.TimeString
	EndTime              types.TimeString
	Timezone             string // IANA zone name
	SlotDurationMinutes  int
	BreakDurationMinutes int
	RecurrencePattern    *string // stored as is, never interpreted
	IsActive             bool

	// Attributes stamped onto every generated slot
	AppointmentType AppointmentType
	LocationType    LocationType
	Specialization  *string
	Price           *float64
	Requirements    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotTemplate returns the slot attributes shared by all slots of the window
func (w *AvailabilityWindow) SlotTemplate() Slot {
	return Slot{
		AvailabilityID:  w.ID,
		ProviderID:      w.ProviderID,
		Status:          SlotStatusAvailable,
		AppointmentType: w.AppointmentType,
		LocationType:    w.LocationType,
		Specialization:  w.Specialization,
		Price:           w.Price,
		Requirements:    w.Requirements,
	}
}

// OverlapsDates returns true if the window's date range intersects [from, to] (both inclusive)
func (w *AvailabilityWindow) OverlapsDates(from, to time.Time) bool {
	return !w.StartDate.After(to) && !w.EndDate.Before(from)
}

// AvailabilityFilter filter for listing a provider's windows
type AvailabilityFilter struct {
	ProviderID uuid.UUID
	StartDate  *time.Time // optional, inclusive
	EndDate    *time.Time // optional, inclusive
}

// HasDateRange returns true if both bounds are set
func (f AvailabilityFilter) HasDateRange() bool {
	return f.StartDate != nil && f.EndDate != nil
}
