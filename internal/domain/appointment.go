package domain

import (
	"time"

	"github.com/dgarza/barberbook/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a booked service for one client with one barber
type Appointment struct {
	ID              int64
	ClientID        int64
	BarberID        int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history and payout calculation
	ServiceName  string
	ServicePrice float64
	TipAmount    float64
	Notes        *string

	// Commission settlement
	CommissionPaid bool
	PayoutID       *int64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksAvailability reports whether the appointment occupies its slot.
// Cancelled and no-show appointments free the slot.
func (a *Appointment) BlocksAvailability() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusBooked
}

// CanBeRescheduled returns true if the appointment can be moved
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusBooked
}

// EndTime returns the wall-clock end of the appointment.
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// EligibleForCommission reports whether the appointment contributes to a
// payout: completed and not yet settled.
func (a *Appointment) EligibleForCommission() bool {
	return a.Status == StatusCompleted && !a.CommissionPaid
}

// BarberAppointmentsFilter narrows appointment queries for one barber
type BarberAppointmentsFilter struct {
	BarberID        int64
	StartDate       *time.Time // period start, inclusive (nil = unbounded)
	EndDate         *time.Time // period end, inclusive (nil = unbounded)
	Status          *AppointmentStatus
	IncludeInactive bool // include cancelled and no-show appointments
}
