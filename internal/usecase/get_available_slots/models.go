package get_available_slots

import (
	"time"

	"github.com/dgarza/barberbook/internal/domain"
)

// Request asks for the bookable slots of one barber, one service, one date
type Request struct {
	BarberID  int64
	ServiceID int64
	Date      time.Time // calendar date, time component ignored
}

// Response carries the ordered bookable slots
type Response struct {
	Date            time.Time
	BarberID        int64
	ServiceID       int64
	DurationMinutes int
	Slots           []domain.TimeSlot
}
