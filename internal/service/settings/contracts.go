package settings

import (
	"context"

	"github.com/dgarza/barberbook/internal/domain"
)

// PolicyRepository persists the shop policy
type PolicyRepository interface {
	GetShopPolicy(ctx context.Context) (*domain.ShopPolicy, error)
	UpdateShopPolicy(ctx context.Context, policy *domain.ShopPolicy) (*domain.ShopPolicy, error)
}

// Logger is the logging interface the service depends on
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
