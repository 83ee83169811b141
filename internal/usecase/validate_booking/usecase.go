package validate_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgarza/barberbook/internal/domain"
	policyRepo "github.com/dgarza/barberbook/internal/infra/storage/policy"
)

// UseCase validates one proposed booking action against the booking rules.
// It is invoked at mutation time with a specific chosen timestamp, separate
// from slot generation, to re-validate against policy changes and races
// between slot display and submission.
type UseCase struct {
	policyRepo   PolicyRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new instance of the usecase
func NewUseCase(policyRepo PolicyRepository, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		policyRepo:   policyRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute validates the proposed action. The violation in the response is
// nil when the action is allowed.
//
// Failure semantics are fail-closed: when the policy cannot be loaded the
// response carries a non-nil violation disallowing the action, never an
// error, so callers always receive a decidable result.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ProposedStart.IsZero() {
		return nil, fmt.Errorf("%w: proposedStart is required", ErrInvalidInput)
	}
	if !req.Action.Valid() {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	now := uc.timeProvider.Now()

	policy, ok := uc.loadEffectivePolicy(ctx, req.BarberID)
	if !ok {
		uc.logger.Warn("ValidateBooking: policy unavailable, failing closed for action=%s", req.Action)
		return &Response{Allowed: false, Violation: PolicyUnavailableViolation()}, nil
	}

	violation := EvaluateRules(req.ProposedStart, now, uc.location, req.Action, policy)
	if violation != nil {
		uc.logger.Info("ValidateBooking: action=%s at %s rejected: %s",
			req.Action, req.ProposedStart.Format(time.RFC3339), violation.Message)
		return &Response{Allowed: false, Violation: violation}, nil
	}

	return &Response{Allowed: true}, nil
}

// loadEffectivePolicy resolves the policy for the request. Missing rows are
// fine (defaults / no override); read failures report ok=false.
func (uc *UseCase) loadEffectivePolicy(ctx context.Context, barberID *int64) (domain.EffectivePolicy, bool) {
	shopPolicy, err := uc.policyRepo.GetShopPolicy(ctx)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("ValidateBooking: failed to load shop policy: %v", err)
			return domain.EffectivePolicy{}, false
		}
		shopPolicy = &domain.ShopPolicy{
			DaysBookableInAdvance:  domain.DefaultDaysBookableInAdvance,
			MinBookAheadHours:      domain.DefaultMinBookAheadHours,
			MinCancelAheadHours:    domain.DefaultMinCancelAheadHours,
			BookingIntervalMinutes: domain.DefaultBookingIntervalMinutes,
		}
	}

	var override *domain.BarberPolicyOverride
	if barberID != nil {
		override, err = uc.policyRepo.GetBarberOverride(ctx, *barberID)
		if err != nil && !errors.Is(err, policyRepo.ErrOverrideNotFound) {
			uc.logger.Error("ValidateBooking: failed to load override for barber=%d: %v", *barberID, err)
			return domain.EffectivePolicy{}, false
		}
	}

	return domain.ResolvePolicy(*shopPolicy, override), true
}
