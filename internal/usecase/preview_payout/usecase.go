package preview_payout

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgarza/barberbook/internal/domain"
	policyRepo "github.com/dgarza/barberbook/internal/infra/storage/policy"
)

// UseCase calculates a barber's pending commission over a date range
type UseCase struct {
	appointmentRepo AppointmentRepository
	saleRepo        SaleRepository
	policyRepo      PolicyRepository
	logger          Logger
}

// NewUseCase creates a new instance of the usecase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	saleRepo SaleRepository,
	policyRepo PolicyRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		saleRepo:        saleRepo,
		policyRepo:      policyRepo,
		logger:          logger,
	}
}

// Execute runs the usecase
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PreviewPayout: barber=%d, period=%s to %s",
		req.BarberID, req.PeriodStart.Format(domain.DateFormat), req.PeriodEnd.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PreviewPayout: validation failed: %v", err)
		return nil, err
	}

	override, err := uc.policyRepo.GetBarberOverride(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrOverrideNotFound) {
			uc.logger.Warn("PreviewPayout: barber=%d has no commission rates", req.BarberID)
			return nil, ErrBarberNotConfigured
		}
		uc.logger.Error("PreviewPayout: failed to load barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to load barber: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.GetUnpaidCompleted(ctx, req.BarberID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		uc.logger.Error("PreviewPayout: failed to get appointments for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	sales, err := uc.saleRepo.GetUnpaidSales(ctx, req.BarberID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		uc.logger.Error("PreviewPayout: failed to get sales for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get sales: %v", ErrInternal, err)
	}

	breakdown := CalculateBreakdown(appointments, sales, override.CommissionRates)

	uc.logger.Info("PreviewPayout: barber=%d services=%d products=%d tips=%d calculated=%.2f",
		req.BarberID, breakdown.Services.Count, breakdown.Products.Count, breakdown.Tips.Count,
		breakdown.CalculatedAmount())

	return &Response{
		BarberID:         req.BarberID,
		PeriodStart:      req.PeriodStart,
		PeriodEnd:        req.PeriodEnd,
		Breakdown:        breakdown,
		CalculatedAmount: breakdown.CalculatedAmount(),
	}, nil
}

// validateRequest validates the incoming request data
func validateRequest(req *Request) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if req.PeriodStart.IsZero() || req.PeriodEnd.IsZero() {
		return fmt.Errorf("%w: period start and end are required", ErrInvalidInput)
	}
	if req.PeriodEnd.Before(req.PeriodStart) {
		return fmt.Errorf("%w: period end before period start", ErrInvalidInput)
	}
	return nil
}
