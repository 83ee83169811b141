package create_booking

import (
	"time"

	"github.com/dgarza/barberbook/pkg/types"
)

// Request asks to book one service with one barber at one slot
type Request struct {
	ClientID  int64
	BarberID  int64
	ServiceID int64
	Date      time.Time        // calendar date
	StartTime types.TimeString // slot start, e.g. "10:30"
	Notes     *string
}

// Response carries the created appointment
type Response struct {
	ID              int64
	ClientID        int64
	BarberID        int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
