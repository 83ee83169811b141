package domain

import (
	"time"

	"github.com/dgarza/barberbook/pkg/types"
)

// DaySchedule is one barber's working window for one day of the week.
// Absence of a record, or Active=false, means the barber does not work
// that day.
type DaySchedule struct {
	ID        int64
	BarberID  int64
	Weekday   time.Weekday
	Active    bool
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayHours is the shop's operating window for one day of the week.
// IsOpen=false (or nil Open/Close) means the shop is closed that day.
type DayHours struct {
	IsOpen bool
	Open   *types.TimeString
	Close  *types.TimeString
}

// WeekHours holds the shop's operating hours for the full week
type WeekHours struct {
	Monday    DayHours
	Tuesday   DayHours
	Wednesday DayHours
	Thursday  DayHours
	Friday    DayHours
	Saturday  DayHours
	Sunday    DayHours
}

// ForWeekday returns the shop hours for the given day of the week
func (w WeekHours) ForWeekday(weekday time.Weekday) DayHours {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DayHours{IsOpen: false}
	}
}

// TimeOffBlock is an absence window for one barber. Start and end are
// absolute timestamps since blocks span calendar dates; a block with nil
// StartAt and EndAt blocks the whole day it is attached to.
type TimeOffBlock struct {
	ID       int64
	BarberID int64
	Date     time.Time
	StartAt  *time.Time
	EndAt    *time.Time
	Reason   *string

	CreatedAt time.Time
}

// IsFullDay reports whether the block covers the entire day.
func (b *TimeOffBlock) IsFullDay() bool {
	return b.StartAt == nil || b.EndAt == nil
}
