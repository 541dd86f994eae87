package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Weekday token stored in templates
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

// Valid reports whether the token is one of MON..SUN
func (d Weekday) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// AvailabilityTemplate is a named recurring pattern saved by a provider.
// Templates have no side effects on slots.
type AvailabilityTemplate struct {
	ID                   uuid.UUID
	ProviderID           uuid.UUID
	Name                 string
	DaysOfWeek           []Weekday
	StartTime            types.TimeString
	EndTime              types.TimeString
	SlotDurationMinutes  int
	BreakDurationMinutes int
	Timezone             string
	RecurrencePattern    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
