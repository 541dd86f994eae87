package domain

// Default slot attributes
const (
	DefaultAppointmentType      = AppointmentTypeConsultation
	DefaultLocationType         = LocationTypeClinic
	DefaultBreakDurationMinutes = 0
)

// Business validation constants
const (
	MinSlotDurationMinutes  = 15
	MaxSlotDurationMinutes  = 240 // 4 hours
	MinBreakDurationMinutes = 0
	MaxBreakDurationMinutes = 120
	MaxTemplateNameLength   = 255
	MaxRequirementsLength   = 1000
	MaxBulkItems            = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
