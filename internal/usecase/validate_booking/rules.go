package validate_booking

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dgarza/barberbook/internal/domain"
)

// fieldStartTime is the field every timing rule reports against
const fieldStartTime = "start_time"

// EvaluateRules checks one proposed start against the booking rules for the
// given action. Rules run top to bottom and the first failure wins; a nil
// result means the action is allowed.
//
// The rules are asymmetric by action: create and reschedule place a new
// start time (advance window, lead time, interval alignment), cancel and
// reschedule release a held slot (cancellation window). Reschedule does
// both.
func EvaluateRules(
	proposedStart time.Time,
	now time.Time,
	loc *time.Location,
	action domain.BookingAction,
	policy domain.EffectivePolicy,
) *domain.BookingRuleViolation {
	localStart := proposedStart.In(loc)
	localNow := now.In(loc)
	hoursUntil := proposedStart.Sub(now).Hours()

	if action.AffectsStart() {
		// Rule 1: advance window, compared on calendar dates in the shop
		// timezone.
		startDate := dateOnly(localStart)
		maxDate := dateOnly(localNow).AddDate(0, 0, policy.DaysBookableInAdvance)
		if startDate.After(maxDate) {
			return &domain.BookingRuleViolation{
				Field: fieldStartTime,
				Message: fmt.Sprintf("Appointments can be booked at most %d days in advance",
					policy.DaysBookableInAdvance),
				MessageEs: fmt.Sprintf("Las citas se pueden reservar con un máximo de %d días de anticipación",
					policy.DaysBookableInAdvance),
			}
		}

		// Rule 2: minimum lead time. The boundary is inclusive: starting
		// exactly at now+minBookAheadHours is allowed.
		if hoursUntil < policy.MinBookAheadHours {
			hours := formatHours(policy.MinBookAheadHours)
			return &domain.BookingRuleViolation{
				Field:     fieldStartTime,
				Message:   fmt.Sprintf("Appointments must be booked at least %s hours in advance", hours),
				MessageEs: fmt.Sprintf("Las citas deben reservarse con al menos %s horas de anticipación", hours),
			}
		}

		// Rule 3: interval alignment, on minutes from midnight in the shop
		// timezone.
		minuteOfDay := localStart.Hour()*60 + localStart.Minute()
		if minuteOfDay%policy.BookingIntervalMinutes != 0 {
			return &domain.BookingRuleViolation{
				Field: fieldStartTime,
				Message: fmt.Sprintf("Appointment times must fall on %d-minute intervals",
					policy.BookingIntervalMinutes),
				MessageEs: fmt.Sprintf("Los horarios de las citas deben caer en intervalos de %d minutos",
					policy.BookingIntervalMinutes),
			}
		}
	}

	if action.ReleasesSlot() {
		// Rule 4: cancellation window.
		if hoursUntil < policy.MinCancelAheadHours {
			hours := formatHours(policy.MinCancelAheadHours)
			return &domain.BookingRuleViolation{
				Field: fieldStartTime,
				Message: fmt.Sprintf("Changes within %s hours of the appointment are not allowed online, please call the shop",
					hours),
				MessageEs: fmt.Sprintf("No se permiten cambios en línea dentro de las %s horas previas a la cita, por favor llame a la barbería",
					hours),
			}
		}
	}

	return nil
}

// PolicyUnavailableViolation is the fail-closed outcome when the policy
// cannot be loaded: the caller still receives a decidable, bilingual answer
// and the action is disallowed.
func PolicyUnavailableViolation() *domain.BookingRuleViolation {
	return &domain.BookingRuleViolation{
		Field:     "policy",
		Message:   "Booking rules are temporarily unavailable, the action cannot be completed",
		MessageEs: "Las reglas de reserva no están disponibles temporalmente, la acción no se puede completar",
	}
}

// formatHours renders an hour threshold without trailing zeros (2, 2.5, 0.75)
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// dateOnly truncates t to midnight in its own location
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
