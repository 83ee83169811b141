package domain

// Default shop policy values, used when no policy row exists yet
const (
	DefaultDaysBookableInAdvance  = 30
	DefaultMinBookAheadHours      = 2.0
	DefaultMinCancelAheadHours    = 24.0
	DefaultBookingIntervalMinutes = 15
)

// Business validation constants
const (
	MinBookingIntervalMinutes = 5
	MaxBookingIntervalMinutes = 120
	MinDaysBookableInAdvance  = 0
	MaxDaysBookableInAdvance  = 365
	MaxLeadHours              = 168 // 1 week
	MaxNotesLength            = 500
	MaxOverrideNoteLength     = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses are the statuses that release a slot.
// Used when filtering appointments for availability.
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}
