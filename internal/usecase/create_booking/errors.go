package create_booking

import (
	"errors"
	"fmt"

	"github.com/dgarza/barberbook/internal/domain"
)

var (
	// ErrServiceNotFound is returned when the requested service does not exist
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive is returned when the service is no longer offered
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrSlotNotAvailable is returned when the requested slot is not among
	// the barber's bookable slots (outside the working window, colliding
	// with an appointment or time off, or otherwise filtered out)
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("create_booking: internal error")
)

// RuleViolationError wraps a booking-rule rejection so handlers can unwrap
// the bilingual violation while the usecase keeps the error return shape.
type RuleViolationError struct {
	Violation *domain.BookingRuleViolation
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("create_booking: booking rule violated: %s", e.Violation.Message)
}
