package validate_booking

import (
	"time"

	"github.com/dgarza/barberbook/internal/domain"
	validateBooking "github.com/dgarza/barberbook/internal/usecase/validate_booking"
)

// ValidateBookingRequest HTTP request model
type ValidateBookingRequest struct {
	ProposedStart string `json:"proposedStart"` // RFC 3339
	Action        string `json:"action"`        // create | cancel | reschedule
	BarberID      *int64 `json:"barberId,omitempty"`
}

// ValidateBookingResponse HTTP response model
type ValidateBookingResponse struct {
	Allowed   bool                         `json:"allowed"`
	Violation *domain.BookingRuleViolation `json:"violation,omitempty"`
}

// ToUseCaseRequest converts the HTTP request to the usecase request
func (r *ValidateBookingRequest) ToUseCaseRequest() (*validateBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.ProposedStart)
	if err != nil {
		return nil, err
	}
	return &validateBooking.Request{
		ProposedStart: start,
		Action:        domain.BookingAction(r.Action),
		BarberID:      r.BarberID,
	}, nil
}

// FromUseCaseResponse converts the usecase response to the HTTP response
func FromUseCaseResponse(resp *validateBooking.Response) *ValidateBookingResponse {
	return &ValidateBookingResponse{
		Allowed:   resp.Allowed,
		Violation: resp.Violation,
	}
}
