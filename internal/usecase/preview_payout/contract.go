package preview_payout

import (
	"context"
	"time"

	"github.com/dgarza/barberbook/internal/domain"
)

// AppointmentRepository reads appointments pending commission settlement
type AppointmentRepository interface {
	GetUnpaidCompleted(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.Appointment, error)
}

// SaleRepository reads product sales pending commission settlement
type SaleRepository interface {
	GetUnpaidSales(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.ProductSale, error)
}

// PolicyRepository reads the barber record carrying the commission rates
type PolicyRepository interface {
	GetBarberOverride(ctx context.Context, barberID int64) (*domain.BarberPolicyOverride, error)
}

// Logger is the logging interface the usecase depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
