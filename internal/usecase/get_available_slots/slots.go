package get_available_slots

import (
	"fmt"
	"time"

	"github.com/dgarza/barberbook/internal/domain"
	"github.com/dgarza/barberbook/pkg/types"
)

// GenerateArgs carries every input of the slot engine explicitly. The engine
// is a pure function of these values: no clock reads, no I/O, identical
// inputs always produce identical output.
type GenerateArgs struct {
	Date     time.Time // calendar date, read by its year/month/day components
	Now      time.Time
	Location *time.Location // shop timezone; day-of-week and "today" use it

	ServiceDurationMinutes int
	Policy                 domain.EffectivePolicy

	DaySchedule  *domain.DaySchedule // nil when the barber has no record for that weekday
	ShopHours    domain.DayHours
	Appointments []*domain.Appointment // rows on other calendar dates are ignored
	TimeOff      []*domain.TimeOffBlock
}

// GenerateAvailableSlots computes the ordered bookable slots for one barber,
// one service and one calendar date.
//
// Pipeline: resolve the working window (barber schedule intersected with
// shop hours), walk it in policy-interval steps emitting candidate slots of
// the service duration, then drop candidates that violate the lead-time
// floor or collide with appointments or time off. Zero slots is the normal
// outcome for closed days, past dates and dates beyond the advance window,
// never an error.
func GenerateAvailableSlots(args GenerateArgs) ([]domain.TimeSlot, error) {
	if args.ServiceDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
	}
	if args.Policy.BookingIntervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: booking interval must be positive", ErrInvalidInput)
	}
	if args.Location == nil {
		return nil, fmt.Errorf("%w: shop location is required", ErrInvalidInput)
	}

	// The request date is read by components: a date parsed at UTC midnight
	// names the same calendar day in any shop timezone.
	date := time.Date(args.Date.Year(), args.Date.Month(), args.Date.Day(), 0, 0, 0, 0, args.Location)
	today := dateOnly(args.Now.In(args.Location))

	// Past dates and dates beyond the advance window yield no slots.
	if date.Before(today) {
		return []domain.TimeSlot{}, nil
	}
	if date.After(today.AddDate(0, 0, args.Policy.DaysBookableInAdvance)) {
		return []domain.TimeSlot{}, nil
	}

	windowStart, windowEnd, open, err := workingWindow(args.DaySchedule, args.ShopHours)
	if err != nil {
		return nil, err
	}
	if !open || windowStart >= windowEnd {
		return []domain.TimeSlot{}, nil
	}

	// A full-day time-off block short-circuits the whole day.
	busy, fullDayOff, err := timeOffWindows(args.TimeOff, date, args.Location)
	if err != nil {
		return nil, err
	}
	if fullDayOff {
		return []domain.TimeSlot{}, nil
	}

	appointmentBusy, err := appointmentWindows(args.Appointments, date)
	if err != nil {
		return nil, err
	}
	busy = append(busy, appointmentBusy...)

	// Earliest allowed start: now + minimum lead time. The boundary is
	// inclusive: a slot starting exactly at the threshold passes.
	leadThreshold := args.Now.In(args.Location).
		Add(time.Duration(args.Policy.MinBookAheadHours * float64(time.Hour)))

	slots := make([]domain.TimeSlot, 0)
	duration := args.ServiceDurationMinutes
	interval := args.Policy.BookingIntervalMinutes

	// Candidate starts sit on the interval grid anchored at midnight, the
	// same grid the placement rules check at booking time.
	first := windowStart
	if rem := windowStart % interval; rem != 0 {
		first += interval - rem
	}

	for cur := first; cur+duration <= windowEnd; cur += interval {
		// built from components so the wall-clock start holds on DST
		// transition days
		slotStartAbs := time.Date(date.Year(), date.Month(), date.Day(), 0, cur, 0, 0, args.Location)
		if slotStartAbs.Before(leadThreshold) {
			continue
		}

		if collides(cur, cur+duration, busy) {
			continue
		}

		start, err := types.NewTimeStringFromMinutes(cur)
		if err != nil {
			return nil, fmt.Errorf("%w: slot start: %v", ErrInternal, err)
		}
		end, err := types.NewTimeStringFromMinutes(cur + duration)
		if err != nil {
			return nil, fmt.Errorf("%w: slot end: %v", ErrInternal, err)
		}
		slots = append(slots, domain.TimeSlot{Start: start, End: end})
	}

	return slots, nil
}

// window is a busy interval in minutes from midnight, half-open [start, end)
type window struct {
	start int
	end   int
}

// collides reports whether [start, end) intersects any busy window.
// Touching endpoints are not a collision.
func collides(start, end int, busy []window) bool {
	for _, w := range busy {
		if start < w.end && end > w.start {
			return true
		}
	}
	return false
}

// workingWindow resolves the barber's effective window in minutes from
// midnight. A barber schedule, when present and active, is intersected with
// the shop hours for the day; with no schedule record the shop hours apply
// alone. Either side being closed closes the day.
func workingWindow(sched *domain.DaySchedule, shopHours domain.DayHours) (start, end int, open bool, err error) {
	if sched != nil && !sched.Active {
		return 0, 0, false, nil
	}

	shopOpen := shopHours.IsOpen && shopHours.Open != nil && shopHours.Close != nil
	var shopStart, shopEnd int
	if shopOpen {
		shopStart, err = shopHours.Open.Minutes()
		if err != nil {
			return 0, 0, false, fmt.Errorf("%w: shop open time: %v", ErrInternal, err)
		}
		shopEnd, err = shopHours.Close.Minutes()
		if err != nil {
			return 0, 0, false, fmt.Errorf("%w: shop close time: %v", ErrInternal, err)
		}
	}

	if sched == nil {
		if !shopOpen {
			return 0, 0, false, nil
		}
		return shopStart, shopEnd, true, nil
	}

	start, err = sched.StartTime.Minutes()
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: schedule start time: %v", ErrInternal, err)
	}
	end, err = sched.EndTime.Minutes()
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: schedule end time: %v", ErrInternal, err)
	}

	// Shop closed closes the day even for an active barber schedule.
	if !shopOpen {
		return 0, 0, false, nil
	}
	if shopStart > start {
		start = shopStart
	}
	if shopEnd < end {
		end = shopEnd
	}

	return start, end, true, nil
}

// timeOffWindows converts the barber's absolute time-off blocks into busy
// minute windows on the given date. A block with missing start or end blocks
// the entire day.
func timeOffWindows(blocks []*domain.TimeOffBlock, date time.Time, loc *time.Location) ([]window, bool, error) {
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	busy := make([]window, 0, len(blocks))
	for _, block := range blocks {
		if block.IsFullDay() {
			if sameDay(block.Date, date) {
				return nil, true, nil
			}
			continue
		}

		blockStart := block.StartAt.In(loc)
		blockEnd := block.EndAt.In(loc)

		// Clamp the block to the requested day; blocks can span dates.
		if !blockStart.Before(dayEnd) || !blockEnd.After(dayStart) {
			continue
		}
		startMin := 0
		if blockStart.After(dayStart) {
			startMin = blockStart.Hour()*60 + blockStart.Minute()
		}
		endMin := types.MinutesPerDay
		if blockEnd.Before(dayEnd) {
			endMin = blockEnd.Hour()*60 + blockEnd.Minute()
		}
		if startMin >= endMin {
			continue
		}
		busy = append(busy, window{start: startMin, end: endMin})
	}

	return busy, false, nil
}

// appointmentWindows converts the date's blocking appointments into busy
// minute windows. Rows on other calendar dates are skipped so a caller
// passing a wider range cannot block the wrong day.
func appointmentWindows(appointments []*domain.Appointment, date time.Time) ([]window, error) {
	busy := make([]window, 0, len(appointments))
	for _, appt := range appointments {
		if !sameDay(appt.Date, date) {
			continue
		}
		if !appt.BlocksAvailability() {
			continue
		}
		start, err := appt.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: appointment id=%d start time: %v", ErrInternal, appt.ID, err)
		}
		busy = append(busy, window{start: start, end: start + appt.DurationMinutes})
	}
	return busy, nil
}

// dateOnly truncates t to midnight in its own location
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay reports whether two times fall on the same calendar date
func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
