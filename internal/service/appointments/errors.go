package appointments

import (
	"errors"
	"fmt"

	"github.com/dgarza/barberbook/internal/domain"
)

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied is returned when the user is neither the client nor
	// the barber of the appointment
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the appointment is not in a
	// cancellable status
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrCannotReschedule is returned when the appointment is not in a
	// reschedulable status
	ErrCannotReschedule = errors.New("appointment cannot be rescheduled")

	// ErrSlotNotAvailable is returned when the requested new slot is not
	// among the barber's bookable slots
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)

// RuleViolationError wraps a booking-rule rejection so handlers can unwrap
// the bilingual violation while the service keeps the error return shape.
type RuleViolationError struct {
	Violation *domain.BookingRuleViolation
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("booking rule violated: %s", e.Violation.Message)
}
