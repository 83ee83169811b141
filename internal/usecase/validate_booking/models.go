package validate_booking

import (
	"time"

	"github.com/dgarza/barberbook/internal/domain"
)

// Request is one proposed booking action to validate
type Request struct {
	ProposedStart time.Time
	Action        domain.BookingAction
	BarberID      *int64 // nil = shop-wide policy, no barber override
}

// Response reports the validation outcome. Violation is nil when the
// proposed action is allowed.
type Response struct {
	Allowed   bool
	Violation *domain.BookingRuleViolation
}
