package domain

import (
	"time"

	"github.com/google/uuid"
)

// SlotStatus represents the booking state of a slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "AVAILABLE"
	SlotStatusBooked    SlotStatus = "BOOKED"
	SlotStatusCancelled SlotStatus = "CANCELLED"
	SlotStatusBlocked   SlotStatus = "BLOCKED"
)

// AppointmentType represents the kind of appointment a slot is offered for
type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "CONSULTATION"
	AppointmentTypeEmergency    AppointmentType = "EMERGENCY"
	AppointmentTypeTelemedicine AppointmentType = "TELEMEDICINE"
)

// LocationType represents where the appointment takes place
type LocationType string

const (
	LocationTypeClinic  LocationType = "CLINIC"
	LocationTypeHome    LocationType = "HOME"
	LocationTypeVirtual LocationType = "VIRTUAL"
)

// Slot represents a single bookable interval [Start, End) in UTC
type Slot struct {
	ID              uuid.UUID
	AvailabilityID  uuid.UUID
	ProviderID      uuid.UUID
	Start           time.Time
	End             time.Time
	Status          SlotStatus
	AppointmentType AppointmentType
	LocationType    LocationType
	Specialization  *string
	Price           *float64
	Requirements    *string
	IsDeleted       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the slot participates in the no-overlap rule and in search
func (s *Slot) IsActive() bool {
	return s.Status == SlotStatusAvailable && !s.IsDeleted
}

// IsBooked returns true if the slot holds a booking
func (s *Slot) IsBooked() bool {
	return s.Status == SlotStatusBooked
}

// Overlaps returns true if the half-open intervals intersect; touching ends do not overlap
func (s *Slot) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && start.Before(s.End)
}

// Valid reports whether the status is known
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusBooked, SlotStatusCancelled, SlotStatusBlocked:
		return true
	}
	return false
}

// Valid reports whether the appointment type is known
func (a AppointmentType) Valid() bool {
	switch a {
	case AppointmentTypeConsultation, AppointmentTypeEmergency, AppointmentTypeTelemedicine:
		return true
	}
	return false
}

// Valid reports whether the location type is known
func (l LocationType) Valid() bool {
	switch l {
	case LocationTypeClinic, LocationTypeHome, LocationTypeVirtual:
		return true
	}
	return false
}

// SlotSearchCriteria conjunctive filters for slot search; nil means "no filter"
type SlotSearchCriteria struct {
	Specialization  *string
	LocationType    *LocationType
	AppointmentType *AppointmentType
	From            *time.Time // slot start >= From
	To              *time.Time // slot end <= To
	MinPrice        *float64
	MaxPrice        *float64
}
