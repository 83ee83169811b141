package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dgarza/barberbook/internal/domain"
	policyStorage "github.com/dgarza/barberbook/internal/infra/storage/policy"
	"github.com/dgarza/barberbook/internal/service/settings/models"
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

func (m *mockPolicyRepo) UpdateShopPolicy(ctx context.Context, policy *domain.ShopPolicy) (*domain.ShopPolicy, error) {
	args := m.Called(ctx, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopPolicy), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestGetPolicy_DefaultsWhenNoRow(t *testing.T) {
	repo := new(mockPolicyRepo)
	repo.On("GetShopPolicy", mock.Anything).Return(nil, policyStorage.ErrPolicyNotFound)

	svc := NewService(repo, nopLogger{})
	resp, err := svc.GetPolicy(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDaysBookableInAdvance, resp.DaysBookableInAdvance)
	assert.InDelta(t, domain.DefaultMinBookAheadHours, resp.MinBookAheadHours, 1e-9)
	assert.InDelta(t, domain.DefaultMinCancelAheadHours, resp.MinCancelAheadHours, 1e-9)
	assert.Equal(t, domain.DefaultBookingIntervalMinutes, resp.BookingIntervalMinutes)
}

func TestGetPolicy_RepositoryError(t *testing.T) {
	repo := new(mockPolicyRepo)
	repo.On("GetShopPolicy", mock.Anything).Return(nil, errors.New("connection refused"))

	svc := NewService(repo, nopLogger{})
	_, err := svc.GetPolicy(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdatePolicy(t *testing.T) {
	repo := new(mockPolicyRepo)
	repo.On("UpdateShopPolicy", mock.Anything, mock.AnythingOfType("*domain.ShopPolicy")).
		Return(&domain.ShopPolicy{
			DaysBookableInAdvance:  14,
			MinBookAheadHours:      4,
			MinCancelAheadHours:    48,
			BookingIntervalMinutes: 30,
		}, nil)

	svc := NewService(repo, nopLogger{})
	resp, err := svc.UpdatePolicy(context.Background(), &models.UpdatePolicyRequest{
		DaysBookableInAdvance:  14,
		MinBookAheadHours:      4,
		MinCancelAheadHours:    48,
		BookingIntervalMinutes: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, 14, resp.DaysBookableInAdvance)
	assert.Equal(t, 30, resp.BookingIntervalMinutes)
}

func TestUpdatePolicy_Validation(t *testing.T) {
	valid := models.UpdatePolicyRequest{
		DaysBookableInAdvance:  30,
		MinBookAheadHours:      2,
		MinCancelAheadHours:    24,
		BookingIntervalMinutes: 15,
	}

	tests := []struct {
		name   string
		mutate func(*models.UpdatePolicyRequest)
	}{
		{"negative advance days", func(r *models.UpdatePolicyRequest) { r.DaysBookableInAdvance = -1 }},
		{"advance days over a year", func(r *models.UpdatePolicyRequest) { r.DaysBookableInAdvance = 366 }},
		{"negative lead hours", func(r *models.UpdatePolicyRequest) { r.MinBookAheadHours = -0.5 }},
		{"lead hours over a week", func(r *models.UpdatePolicyRequest) { r.MinBookAheadHours = 169 }},
		{"negative cancel hours", func(r *models.UpdatePolicyRequest) { r.MinCancelAheadHours = -1 }},
		{"interval too small", func(r *models.UpdatePolicyRequest) { r.BookingIntervalMinutes = 4 }},
		{"interval too large", func(r *models.UpdatePolicyRequest) { r.BookingIntervalMinutes = 121 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockPolicyRepo)
			svc := NewService(repo, nopLogger{})

			req := valid
			tt.mutate(&req)

			_, err := svc.UpdatePolicy(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "UpdateShopPolicy", mock.Anything, mock.Anything)
		})
	}
}
