package create_payout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dgarza/barberbook/internal/domain"
	policyRepo "github.com/dgarza/barberbook/internal/infra/storage/policy"
	"github.com/dgarza/barberbook/pkg/ptr"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) GetUnpaidCompleted(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, barberID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) MarkCommissionPaid(ctx context.Context, ids []int64, payoutID int64) error {
	return m.Called(ctx, ids, payoutID).Error(0)
}

type mockSaleRepo struct {
	mock.Mock
}

func (m *mockSaleRepo) GetUnpaidSales(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.ProductSale, error) {
	args := m.Called(ctx, barberID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProductSale), args.Error(1)
}

func (m *mockSaleRepo) MarkCommissionPaid(ctx context.Context, ids []int64, payoutID int64) error {
	return m.Called(ctx, ids, payoutID).Error(0)
}

type mockPayoutRepo struct {
	mock.Mock
}

func (m *mockPayoutRepo) Create(ctx context.Context, payout *domain.Payout) (*domain.Payout, error) {
	args := m.Called(ctx, payout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// the insert echoes the row back with its assigned id; a function
	// return value lets tests express that
	if fn, ok := args.Get(0).(func(*domain.Payout) *domain.Payout); ok {
		return fn(payout), args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}

func (m *mockPayoutRepo) GetOverlapping(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.Payout, error) {
	args := m.Called(ctx, barberID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payout), args.Error(1)
}

type mockPolicyRepo struct {
	mock.Mock
}

func (m *mockPolicyRepo) GetBarberOverride(ctx context.Context, barberID int64) (*domain.BarberPolicyOverride, error) {
	args := m.Called(ctx, barberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BarberPolicyOverride), args.Error(1)
}

// fakeTxManager runs the function directly; transaction semantics are the
// real manager's concern
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type testMocks struct {
	appointments *mockAppointmentRepo
	sales        *mockSaleRepo
	payouts      *mockPayoutRepo
	policies     *mockPolicyRepo
}

func newTestUseCase() (*UseCase, *testMocks) {
	m := &testMocks{
		appointments: new(mockAppointmentRepo),
		sales:        new(mockSaleRepo),
		payouts:      new(mockPayoutRepo),
		policies:     new(mockPolicyRepo),
	}
	uc := NewUseCase(m.appointments, m.sales, m.payouts, m.policies, fakeTxManager{}, nopLogger{})
	return uc, m
}

func testPeriod() (time.Time, time.Time) {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
}

func barberOverride() *domain.BarberPolicyOverride {
	return &domain.BarberPolicyOverride{
		BarberID: 7,
		CommissionRates: domain.CommissionRates{
			ServiceRate: 0.5,
			ProductRate: 0.1,
			TipRate:     1.0,
		},
	}
}

func unpaidItems() ([]*domain.Appointment, []*domain.ProductSale) {
	appointments := []*domain.Appointment{
		{ID: 1, BarberID: 7, Status: domain.StatusCompleted, ServicePrice: 40, TipAmount: 10},
		{ID: 2, BarberID: 7, Status: domain.StatusCompleted, ServicePrice: 60},
	}
	sales := []*domain.ProductSale{
		{ID: 20, BarberID: 7, Quantity: 1, RetailPrice: 30},
	}
	return appointments, sales
}

func TestExecute_CreatesPayoutAndSettlesItems(t *testing.T) {
	uc, m := newTestUseCase()
	from, to := testPeriod()
	appointments, sales := unpaidItems()

	m.policies.On("GetBarberOverride", mock.Anything, int64(7)).Return(barberOverride(), nil)
	m.payouts.On("GetOverlapping", mock.Anything, int64(7), from, to).Return([]*domain.Payout{}, nil)
	m.appointments.On("GetUnpaidCompleted", mock.Anything, int64(7), from, to).Return(appointments, nil)
	m.sales.On("GetUnpaidSales", mock.Anything, int64(7), from, to).Return(sales, nil)

	m.payouts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payout")).
		Return(func(p *domain.Payout) *domain.Payout {
			stored := *p
			stored.ID = 42
			stored.CreatedAt = time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
			return &stored
		}, nil)

	m.appointments.On("MarkCommissionPaid", mock.Anything, []int64{1, 2}, int64(42)).Return(nil)
	m.sales.On("MarkCommissionPaid", mock.Anything, []int64{20}, int64(42)).Return(nil)

	// services 100*0.5 + tips 10*1.0 + products 30*0.1 = 63
	resp, err := uc.Execute(context.Background(), &Request{
		BarberID:    7,
		PeriodStart: from,
		PeriodEnd:   to,
		PaidAmount:  63,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.NotEmpty(t, resp.Reference)
	assert.InDelta(t, 63, resp.CalculatedAmount, 1e-9)
	assert.InDelta(t, 63, resp.PaidAmount, 1e-9)
	assert.InDelta(t, 0, resp.Difference, 1e-9)

	m.appointments.AssertExpectations(t)
	m.sales.AssertExpectations(t)
	m.payouts.AssertExpectations(t)
}

func TestExecute_BarberNotConfigured(t *testing.T) {
	uc, m := newTestUseCase()
	from, to := testPeriod()

	m.policies.On("GetBarberOverride", mock.Anything, int64(7)).
		Return(nil, policyRepo.ErrOverrideNotFound)

	_, err := uc.Execute(context.Background(), &Request{
		BarberID:    7,
		PeriodStart: from,
		PeriodEnd:   to,
		PaidAmount:  10,
	})

	assert.ErrorIs(t, err, ErrBarberNotConfigured)
}

func TestExecute_OverlappingPeriod(t *testing.T) {
	uc, m := newTestUseCase()
	from, to := testPeriod()

	m.policies.On("GetBarberOverride", mock.Anything, int64(7)).Return(barberOverride(), nil)
	m.payouts.On("GetOverlapping", mock.Anything, int64(7), from, to).
		Return([]*domain.Payout{{ID: 3, BarberID: 7}}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BarberID:    7,
		PeriodStart: from,
		PeriodEnd:   to,
		PaidAmount:  10,
	})

	assert.ErrorIs(t, err, ErrOverlappingPayout)
	m.payouts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_ForceBypassesOverlap(t *testing.T) {
	uc, m := newTestUseCase()
	from, to := testPeriod()
	appointments, sales := unpaidItems()

	m.policies.On("GetBarberOverride", mock.Anything, int64(7)).Return(barberOverride(), nil)
	m.payouts.On("GetOverlapping", mock.Anything, int64(7), from, to).
		Return([]*domain.Payout{{ID: 3, BarberID: 7}}, nil)
	m.appointments.On("GetUnpaidCompleted", mock.Anything, int64(7), from, to).Return(appointments, nil)
	m.sales.On("GetUnpaidSales", mock.Anything, int64(7), from, to).Return(sales, nil)
	m.payouts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payout")).
		Return(func(p *domain.Payout) *domain.Payout {
			stored := *p
			stored.ID = 43
			return &stored
		}, nil)
	m.appointments.On("MarkCommissionPaid", mock.Anything, []int64{1, 2}, int64(43)).Return(nil)
	m.sales.On("MarkCommissionPaid", mock.Anything, []int64{20}, int64(43)).Return(nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BarberID:    7,
		PeriodStart: from,
		PeriodEnd:   to,
		PaidAmount:  63,
		Force:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(43), resp.ID)
}

func TestExecute_NothingToPay(t *testing.T) {
	uc, m := newTestUseCase()
	from, to := testPeriod()

	m.policies.On("GetBarberOverride", mock.Anything, int64(7)).Return(barberOverride(), nil)
	m.payouts.On("GetOverlapping", mock.Anything, int64(7), from, to).Return([]*domain.Payout{}, nil)
	m.appointments.On("GetUnpaidCompleted", mock.Anything, int64(7), from, to).Return([]*domain.Appointment{}, nil)
	m.sales.On("GetUnpaidSales", mock.Anything, int64(7), from, to).Return([]*domain.ProductSale{}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BarberID:    7,
		PeriodStart: from,
		PeriodEnd:   to,
		PaidAmount:  0,
	})

	assert.ErrorIs(t, err, ErrNothingToPay)
}

func TestExecute_OverrideNote(t *testing.T) {
	setup := func() (*UseCase, *testMocks, time.Time, time.Time) {
		uc, m := newTestUseCase()
		from, to := testPeriod()
		appointments, sales := unpaidItems()

		m.policies.On("GetBarberOverride", mock.Anything, int64(7)).Return(barberOverride(), nil)
		m.payouts.On("GetOverlapping", mock.Anything, int64(7), from, to).Return([]*domain.Payout{}, nil)
		m.appointments.On("GetUnpaidCompleted", mock.Anything, int64(7), from, to).Return(appointments, nil)
		m.sales.On("GetUnpaidSales", mock.Anything, int64(7), from, to).Return(sales, nil)
		return uc, m, from, to
	}

	allowCreate := func(m *testMocks, id int64) {
		m.payouts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payout")).
			Return(func(p *domain.Payout) *domain.Payout {
				stored := *p
				stored.ID = id
				return &stored
			}, nil)
		m.appointments.On("MarkCommissionPaid", mock.Anything, []int64{1, 2}, id).Return(nil)
		m.sales.On("MarkCommissionPaid", mock.Anything, []int64{20}, id).Return(nil)
	}

	t.Run("deviation without note is rejected", func(t *testing.T) {
		uc, _, from, to := setup()
		_, err := uc.Execute(context.Background(), &Request{
			BarberID:    7,
			PeriodStart: from,
			PeriodEnd:   to,
			PaidAmount:  60, // calculated is 63
		})
		assert.ErrorIs(t, err, ErrOverrideNoteRequired)
	})

	t.Run("blank note does not count", func(t *testing.T) {
		uc, _, from, to := setup()
		_, err := uc.Execute(context.Background(), &Request{
			BarberID:     7,
			PeriodStart:  from,
			PeriodEnd:    to,
			PaidAmount:   60,
			OverrideNote: ptr.Ptr("   "),
		})
		assert.ErrorIs(t, err, ErrOverrideNoteRequired)
	})

	t.Run("deviation with note is accepted", func(t *testing.T) {
		uc, m, from, to := setup()
		allowCreate(m, 44)
		resp, err := uc.Execute(context.Background(), &Request{
			BarberID:     7,
			PeriodStart:  from,
			PeriodEnd:    to,
			PaidAmount:   60,
			OverrideNote: ptr.Ptr("cash advance deducted"),
		})
		require.NoError(t, err)
		assert.InDelta(t, -3, resp.Difference, 1e-9)
	})

	t.Run("within a cent needs no note", func(t *testing.T) {
		uc, m, from, to := setup()
		allowCreate(m, 45)
		_, err := uc.Execute(context.Background(), &Request{
			BarberID:    7,
			PeriodStart: from,
			PeriodEnd:   to,
			PaidAmount:  63.01,
		})
		require.NoError(t, err)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _ := newTestUseCase()
	from, to := testPeriod()

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing barber", &Request{PeriodStart: from, PeriodEnd: to, PaidAmount: 10}},
		{"period end before start", &Request{BarberID: 7, PeriodStart: to, PeriodEnd: from, PaidAmount: 10}},
		{"negative paid amount", &Request{BarberID: 7, PeriodStart: from, PeriodEnd: to, PaidAmount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
