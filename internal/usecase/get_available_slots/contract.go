package get_available_slots

import (
	"context"
	"time"

	"github.com/dgarza/barberbook/internal/domain"
)

// PolicyRepository reads the shop policy and per-barber overrides
type PolicyRepository interface {
	GetShopPolicy(ctx context.Context) (*domain.ShopPolicy, error)
	GetBarberOverride(ctx context.Context, barberID int64) (*domain.BarberPolicyOverride, error)
}

// ScheduleRepository reads barber schedules, shop hours and time off
type ScheduleRepository interface {
	GetDaySchedule(ctx context.Context, barberID int64, weekday time.Weekday) (*domain.DaySchedule, error)
	GetWeekHours(ctx context.Context) (*domain.WeekHours, error)
	GetTimeOff(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.TimeOffBlock, error)
}

// AppointmentRepository reads existing appointments
type AppointmentRepository interface {
	GetByBarberWithFilter(ctx context.Context, filter domain.BarberAppointmentsFilter) ([]*domain.Appointment, error)
}

// ServiceRepository reads the service catalog
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// TimeProvider supplies the current time; injectable for deterministic tests
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface the usecase depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the wall-clock provider used in production
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
