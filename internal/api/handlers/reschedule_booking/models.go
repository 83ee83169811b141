package reschedule_booking

import (
	"time"

	"github.com/dgarza/barberbook/internal/domain"
	"github.com/dgarza/barberbook/internal/service/appointments/models"
	"github.com/dgarza/barberbook/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	NewDate      string `json:"newDate"`      // "2026-09-20"
	NewStartTime string `json:"newStartTime"` // "14:30"
}

// ViolationResponse reports a booking-rule rejection with the bilingual
// violation payload
type ViolationResponse struct {
	Allowed   bool                         `json:"allowed"`
	Violation *domain.BookingRuleViolation `json:"violation"`
}

// ToServiceRequest converts the HTTP request to the service request
func (r *RescheduleAppointmentRequest) ToServiceRequest(userID int64) (*models.RescheduleAppointmentRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &models.RescheduleAppointmentRequest{
		UserID:       userID,
		NewDate:      date,
		NewStartTime: startTime,
	}, nil
}
