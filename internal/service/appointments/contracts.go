package appointments

import (
	"context"
	"time"

	"github.com/dgarza/barberbook/internal/domain"
	"github.com/dgarza/barberbook/pkg/types"
)

// AppointmentRepository is the appointment storage interface
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByBarberWithFilter(ctx context.Context, filter domain.BarberAppointmentsFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, reason string) error
	Reschedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error
}

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

// TransactionManager runs functions inside database transactions
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time; injectable for deterministic tests
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface the service depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
