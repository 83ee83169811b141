package validate_booking

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
