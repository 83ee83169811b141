package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgarza/barberbook/internal/domain"
	policyRepo "github.com/dgarza/barberbook/internal/infra/storage/policy"
	"github.com/dgarza/barberbook/internal/service/settings/models"
)

// Service manages the shop-wide booking policy
type Service struct {
	policyRepo PolicyRepository
	logger     Logger
}

// NewService creates a new settings service
func NewService(policyRepo PolicyRepository, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// GetPolicy fetches the shop policy. When no row exists yet the defaults
// are returned, matching what the availability and validation paths apply.
func (s *Service) GetPolicy(ctx context.Context) (*models.PolicyResponse, error) {
	s.logger.Info("GetPolicy: fetching shop policy")

	policy, err := s.policyRepo.GetShopPolicy(ctx)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Warn("GetPolicy: no policy row, returning defaults")
			return models.FromDomainPolicy(&domain.ShopPolicy{
				DaysBookableInAdvance:  domain.DefaultDaysBookableInAdvance,
				MinBookAheadHours:      domain.DefaultMinBookAheadHours,
				MinCancelAheadHours:    domain.DefaultMinCancelAheadHours,
				BookingIntervalMinutes: domain.DefaultBookingIntervalMinutes,
			}), nil
		}
		s.logger.Error("GetPolicy: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPolicy - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(policy), nil
}

// UpdatePolicy validates and upserts the shop policy
func (s *Service) UpdatePolicy(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("UpdatePolicy: days=%d, bookAhead=%.2f, cancelAhead=%.2f, interval=%d",
		req.DaysBookableInAdvance, req.MinBookAheadHours, req.MinCancelAheadHours, req.BookingIntervalMinutes)

	if err := s.validatePolicy(req); err != nil {
		s.logger.Warn("UpdatePolicy: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.policyRepo.UpdateShopPolicy(ctx, req.ToDomainPolicy())
	if err != nil {
		s.logger.Error("UpdatePolicy: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdatePolicy - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePolicy: successfully updated shop policy")
	return models.FromDomainPolicy(updated), nil
}

func (s *Service) validatePolicy(req *models.UpdatePolicyRequest) error {
	if req.DaysBookableInAdvance < domain.MinDaysBookableInAdvance || req.DaysBookableInAdvance > domain.MaxDaysBookableInAdvance {
		return fmt.Errorf("%w: daysBookableInAdvance must be between %d and %d",
			ErrInvalidInput, domain.MinDaysBookableInAdvance, domain.MaxDaysBookableInAdvance)
	}
	if req.MinBookAheadHours < 0 || req.MinBookAheadHours > domain.MaxLeadHours {
		return fmt.Errorf("%w: minBookAheadHours must be between 0 and %d", ErrInvalidInput, domain.MaxLeadHours)
	}
	if req.MinCancelAheadHours < 0 || req.MinCancelAheadHours > domain.MaxLeadHours {
		return fmt.Errorf("%w: minCancelAheadHours must be between 0 and %d", ErrInvalidInput, domain.MaxLeadHours)
	}
	if req.BookingIntervalMinutes < domain.MinBookingIntervalMinutes || req.BookingIntervalMinutes > domain.MaxBookingIntervalMinutes {
		return fmt.Errorf("%w: bookingIntervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingIntervalMinutes, domain.MaxBookingIntervalMinutes)
	}
	return nil
}
