package cancel_booking

import (
	"github.com/dgarza/barberbook/internal/domain"
	"github.com/dgarza/barberbook/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ViolationResponse reports a booking-rule rejection with the bilingual
// violation payload
type ViolationResponse struct {
	Allowed   bool                         `json:"allowed"`
	Violation *domain.BookingRuleViolation `json:"violation"`
}

// ToServiceRequest converts the HTTP request to the service request
func (r *CancelAppointmentRequest) ToServiceRequest(userID int64) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
	}
}
