package reschedule_booking

import (
	"context"

	"github.com/dgarza/barberbook/internal/service/appointments/models"
)

type AppointmentService interface {
	Reschedule(ctx context.Context, id int64, req *models.RescheduleAppointmentRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
