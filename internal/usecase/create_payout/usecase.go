package create_payout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/dgarza/barberbook/internal/domain"
	policyRepo "github.com/dgarza/barberbook/internal/infra/storage/policy"
	"github.com/dgarza/barberbook/internal/usecase/preview_payout"
)

// UseCase settles a barber's commission for a date range. The overlap check,
// the payout insert and the commission-paid marking of every contributing
// item run inside one serializable transaction: either the payout exists and
// all items are linked to it, or nothing changed. That atomicity plus the
// unpaid-items filter is the idempotence boundary against double payouts.
type UseCase struct {
	appointmentRepo AppointmentRepository
	saleRepo        SaleRepository
	payoutRepo      PayoutRepository
	policyRepo      PolicyRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase creates a new instance of the usecase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	saleRepo SaleRepository,
	payoutRepo PayoutRepository,
	policyRepo PolicyRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		saleRepo:        saleRepo,
		payoutRepo:      payoutRepo,
		policyRepo:      policyRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute runs the usecase
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePayout: barber=%d, period=%s to %s, paid=%.2f, force=%t",
		req.BarberID, req.PeriodStart.Format(domain.DateFormat), req.PeriodEnd.Format(domain.DateFormat),
		req.PaidAmount, req.Force)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePayout: validation failed: %v", err)
		return nil, err
	}

	override, err := uc.policyRepo.GetBarberOverride(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrOverrideNotFound) {
			uc.logger.Warn("CreatePayout: barber=%d has no commission rates", req.BarberID)
			return nil, ErrBarberNotConfigured
		}
		uc.logger.Error("CreatePayout: failed to load barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to load barber: %v", ErrInternal, err)
	}

	var result *domain.Payout

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Overlapping periods would settle the same revenue twice.
		existing, err := uc.payoutRepo.GetOverlapping(txCtx, req.BarberID, req.PeriodStart, req.PeriodEnd)
		if err != nil {
			uc.logger.Error("CreatePayout: overlap check failed for barber=%d: %v", req.BarberID, err)
			return fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
		}
		if len(existing) > 0 && !req.Force {
			uc.logger.Warn("CreatePayout: period overlaps %d existing payout(s) for barber=%d",
				len(existing), req.BarberID)
			return ErrOverlappingPayout
		}

		appointments, err := uc.appointmentRepo.GetUnpaidCompleted(txCtx, req.BarberID, req.PeriodStart, req.PeriodEnd)
		if err != nil {
			uc.logger.Error("CreatePayout: failed to get appointments for barber=%d: %v", req.BarberID, err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		sales, err := uc.saleRepo.GetUnpaidSales(txCtx, req.BarberID, req.PeriodStart, req.PeriodEnd)
		if err != nil {
			uc.logger.Error("CreatePayout: failed to get sales for barber=%d: %v", req.BarberID, err)
			return fmt.Errorf("%w: failed to get sales: %v", ErrInternal, err)
		}

		breakdown := preview_payout.CalculateBreakdown(appointments, sales, override.CommissionRates)
		calculated := breakdown.CalculatedAmount()

		if breakdown.Services.Count == 0 && breakdown.Products.Count == 0 && breakdown.Tips.Count == 0 {
			return ErrNothingToPay
		}

		// The paid amount may deviate from the calculation (rounding, cash
		// adjustments) but only with a mandatory note for the audit trail.
		if math.Abs(req.PaidAmount-calculated) > domain.PayoutCentTolerance {
			if req.OverrideNote == nil || strings.TrimSpace(*req.OverrideNote) == "" {
				uc.logger.Warn("CreatePayout: barber=%d paid=%.2f calculated=%.2f without override note",
					req.BarberID, req.PaidAmount, calculated)
				return ErrOverrideNoteRequired
			}
		}

		payout := &domain.Payout{
			Reference:        uuid.NewString(),
			BarberID:         req.BarberID,
			PeriodStart:      req.PeriodStart,
			PeriodEnd:        req.PeriodEnd,
			Breakdown:        breakdown,
			CalculatedAmount: calculated,
			PaidAmount:       req.PaidAmount,
			OverrideNote:     req.OverrideNote,
		}

		created, err := uc.payoutRepo.Create(txCtx, payout)
		if err != nil {
			uc.logger.Error("CreatePayout: failed to create payout for barber=%d: %v", req.BarberID, err)
			return fmt.Errorf("%w: failed to create payout: %v", ErrInternal, err)
		}

		// Mark every contributing item settled and link it to the payout.
		// Same transaction as the insert: a crash rolls back both.
		if len(breakdown.Services.ItemIDs) > 0 {
			if err := uc.appointmentRepo.MarkCommissionPaid(txCtx, breakdown.Services.ItemIDs, created.ID); err != nil {
				uc.logger.Error("CreatePayout: failed to mark appointments paid for payout=%d: %v", created.ID, err)
				return fmt.Errorf("%w: failed to mark appointments paid: %v", ErrInternal, err)
			}
		}
		if len(breakdown.Products.ItemIDs) > 0 {
			if err := uc.saleRepo.MarkCommissionPaid(txCtx, breakdown.Products.ItemIDs, created.ID); err != nil {
				uc.logger.Error("CreatePayout: failed to mark sales paid for payout=%d: %v", created.ID, err)
				return fmt.Errorf("%w: failed to mark sales paid: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreatePayout: created payout id=%d ref=%s for barber=%d, paid=%.2f calculated=%.2f",
		result.ID, result.Reference, result.BarberID, result.PaidAmount, result.CalculatedAmount)

	return &Response{
		ID:               result.ID,
		Reference:        result.Reference,
		BarberID:         result.BarberID,
		PeriodStart:      result.PeriodStart,
		PeriodEnd:        result.PeriodEnd,
		Breakdown:        result.Breakdown,
		CalculatedAmount: result.CalculatedAmount,
		PaidAmount:       result.PaidAmount,
		Difference:       result.Difference(),
		OverrideNote:     result.OverrideNote,
		CreatedAt:        result.CreatedAt,
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
	if req.PaidAmount < 0 {
		return fmt.Errorf("%w: paid amount must not be negative", ErrInvalidInput)
	}
	if req.OverrideNote != nil && len(*req.OverrideNote) > domain.MaxOverrideNoteLength {
		return fmt.Errorf("%w: override note exceeds %d characters", ErrInvalidInput, domain.MaxOverrideNoteLength)
	}
	return nil
}
