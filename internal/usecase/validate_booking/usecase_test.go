package validate_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dgarza/barberbook/internal/domain"
	policyRepo "github.com/dgarza/barberbook/internal/infra/storage/policy"
	"github.com/dgarza/barberbook/pkg/ptr"
)

type mockPolicyRepo struct {
	mock.Mock
}

func (m *mockPolicyRepo) GetShopPolicy(ctx context.Context) (*domain.ShopPolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopPolicy), args.Error(1)
}

func (m *mockPolicyRepo) GetBarberOverride(ctx context.Context, barberID int64) (*domain.BarberPolicyOverride, error) {
	args := m.Called(ctx, barberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BarberPolicyOverride), args.Error(1)
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestUseCase(t *testing.T, repo *mockPolicyRepo, now time.Time) *UseCase {
	t.Helper()
	uc := NewUseCase(repo, mustLoc(t), nopLogger{})
	uc.timeProvider = fixedClock{t: now}
	return uc
}

func TestExecute_Allowed(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	repo := new(mockPolicyRepo)
	repo.On("GetShopPolicy", mock.Anything).Return(&domain.ShopPolicy{
		DaysBookableInAdvance:  30,
		MinBookAheadHours:      2,
		MinCancelAheadHours:    24,
		BookingIntervalMinutes: 15,
	}, nil)

	uc := newTestUseCase(t, repo, now)
	resp, err := uc.Execute(context.Background(), &Request{
		ProposedStart: time.Date(2026, 3, 4, 10, 0, 0, 0, loc),
		Action:        domain.ActionCreate,
	})

	require.NoError(t, err)
	assert.True(t, resp.Allowed)
	assert.Nil(t, resp.Violation)
}

func TestExecute_BarberOverrideApplied(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	repo := new(mockPolicyRepo)
	repo.On("GetShopPolicy", mock.Anything).Return(&domain.ShopPolicy{
		DaysBookableInAdvance:  30,
		MinBookAheadHours:      2,
		MinCancelAheadHours:    24,
		BookingIntervalMinutes: 15,
	}, nil)
	repo.On("GetBarberOverride", mock.Anything, int64(7)).Return(&domain.BarberPolicyOverride{
		BarberID:                  7,
		MinBookAheadHoursOverride: ptr.Ptr(6.0),
	}, nil)

	uc := newTestUseCase(t, repo, now)

	// 4 hours out: fine shop-wide, too soon under the barber's 6h override
	resp, err := uc.Execute(context.Background(), &Request{
		ProposedStart: now.Add(4 * time.Hour),
		Action:        domain.ActionCreate,
		BarberID:      ptr.Ptr(int64(7)),
	})

	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	require.NotNil(t, resp.Violation)
	assert.Contains(t, resp.Violation.Message, "6 hours")
}

func TestExecute_DefaultsWhenNoPolicyRow(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	repo := new(mockPolicyRepo)
	repo.On("GetShopPolicy", mock.Anything).Return(nil, policyRepo.ErrPolicyNotFound)

	uc := newTestUseCase(t, repo, now)
	resp, err := uc.Execute(context.Background(), &Request{
		ProposedStart: time.Date(2026, 3, 4, 10, 0, 0, 0, loc),
		Action:        domain.ActionCreate,
	})

	require.NoError(t, err)
	assert.True(t, resp.Allowed)
}

func TestExecute_FailsClosedOnPolicyReadError(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	repo := new(mockPolicyRepo)
	repo.On("GetShopPolicy", mock.Anything).Return(nil, errors.New("connection refused"))

	uc := newTestUseCase(t, repo, now)
	resp, err := uc.Execute(context.Background(), &Request{
		ProposedStart: time.Date(2026, 3, 4, 10, 0, 0, 0, loc),
		Action:        domain.ActionCreate,
	})

	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	require.NotNil(t, resp.Violation)
	assert.Equal(t, "policy", resp.Violation.Field)
}

func TestExecute_InvalidInput(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)
	uc := newTestUseCase(t, new(mockPolicyRepo), now)

	_, err := uc.Execute(context.Background(), &Request{
		Action: domain.ActionCreate,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		ProposedStart: now.Add(48 * time.Hour),
		Action:        domain.BookingAction("destroy"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
