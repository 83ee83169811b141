package preview_payout

import (
	"context"

	previewPayout "github.com/dgarza/barberbook/internal/usecase/preview_payout"
)

type PreviewPayoutUseCase interface {
	Execute(ctx context.Context, req *previewPayout.Request) (*previewPayout.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
