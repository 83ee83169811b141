package payouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgarza/barberbook/internal/domain"
)

// ErrInternal is returned on internal service failures
var ErrInternal = errors.New("service: internal error")

// Service reads settled payout history
type Service struct {
	payoutRepo PayoutRepository
	logger     Logger
}

// NewService creates a new payouts service
func NewService(payoutRepo PayoutRepository, logger Logger) *Service {
	return &Service{
		payoutRepo: payoutRepo,
		logger:     logger,
	}
}

// ListByBarber fetches the barber's payouts, newest period first
func (s *Service) ListByBarber(ctx context.Context, barberID int64) ([]*domain.Payout, error) {
	s.logger.Info("ListByBarber: fetching payouts for barber=%d", barberID)

	payouts, err := s.payoutRepo.ListByBarber(ctx, barberID)
	if err != nil {
		s.logger.Error("ListByBarber: repository error for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: ListByBarber - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByBarber: fetched %d payouts for barber=%d", len(payouts), barberID)
	return payouts, nil
}
