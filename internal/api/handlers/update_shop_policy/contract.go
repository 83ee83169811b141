package update_shop_policy

import (
	"context"

	"github.com/dgarza/barberbook/internal/service/settings/models"
)

type SettingsService interface {
	UpdatePolicy(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
