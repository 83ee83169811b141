package payouts

import (
	"context"

	"github.com/dgarza/barberbook/internal/domain"
)

// PayoutRepository reads payout history
type PayoutRepository interface {
	ListByBarber(ctx context.Context, barberID int64) ([]*domain.Payout, error)
}

// Logger is the logging interface the service depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
