package create_payout

import (
	"context"
	"time"

	"github.com/dgarza/barberbook/internal/domain"
)

// AppointmentRepository reads and settles appointments pending commission
type AppointmentRepository interface {
	GetUnpaidCompleted(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.Appointment, error)
	MarkCommissionPaid(ctx context.Context, ids []int64, payoutID int64) error
}

// SaleRepository reads and settles product sales pending commission
type SaleRepository interface {
	GetUnpaidSales(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.ProductSale, error)
	MarkCommissionPaid(ctx context.Context, ids []int64, payoutID int64) error
}

// PayoutRepository persists payouts and answers overlap queries
type PayoutRepository interface {
	Create(ctx context.Context, payout *domain.Payout) (*domain.Payout, error)
	GetOverlapping(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.Payout, error)
}

// PolicyRepository reads the barber record carrying the commission rates
type PolicyRepository interface {
	GetBarberOverride(ctx context.Context, barberID int64) (*domain.BarberPolicyOverride, error)
}

// TransactionManager runs functions inside database transactions
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface the usecase depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
