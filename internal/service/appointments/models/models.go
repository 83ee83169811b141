package models

import (
	"time"

	"github.com/dgarza/barberbook/internal/domain"
	"github.com/dgarza/barberbook/pkg/types"
)

// CancelAppointmentRequest asks to cancel one appointment
type CancelAppointmentRequest struct {
	UserID             int64
	CancellationReason string
}

// RescheduleAppointmentRequest asks to move one appointment to a new slot
type RescheduleAppointmentRequest struct {
	UserID       int64
	NewDate      time.Time
	NewStartTime types.TimeString
}

// AppointmentResponse is the appointment view returned to handlers
type AppointmentResponse struct {
	ID              int64            `json:"id"`
	ClientID        int64            `json:"clientId"`
	BarberID        int64            `json:"barberId"`
	ServiceID       int64            `json:"serviceId"`
	Date            string           `json:"date"`
	StartTime       types.TimeString `json:"startTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Status          string           `json:"status"`

	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	TipAmount    float64 `json:"tipAmount"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainAppointment converts a domain appointment to the response view
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 a.ID,
		ClientID:           a.ClientID,
		BarberID:           a.BarberID,
		ServiceID:          a.ServiceID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime,
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		TipAmount:          a.TipAmount,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
