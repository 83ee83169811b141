package get_payouts

import (
	"context"

	"github.com/dgarza/barberbook/internal/domain"
)

type PayoutService interface {
	ListByBarber(ctx context.Context, barberID int64) ([]*domain.Payout, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
