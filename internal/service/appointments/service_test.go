package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dgarza/barberbook/internal/domain"
	storage "github.com/dgarza/barberbook/internal/infra/storage/appointment"
	"github.com/dgarza/barberbook/internal/infra/storage/policy"
	"github.com/dgarza/barberbook/internal/service/appointments/models"
	"github.com/dgarza/barberbook/pkg/types"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) GetByBarberWithFilter(ctx context.Context, filter domain.BarberAppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) Cancel(ctx context.Context, id int64, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

func (m *mockAppointmentRepo) Reschedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error {
	return m.Called(ctx, id, date, startTime).Error(0)
}

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

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) GetDaySchedule(ctx context.Context, barberID int64, weekday time.Weekday) (*domain.DaySchedule, error) {
	args := m.Called(ctx, barberID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DaySchedule), args.Error(1)
}

func (m *mockScheduleRepo) GetWeekHours(ctx context.Context) (*domain.WeekHours, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeekHours), args.Error(1)
}

func (m *mockScheduleRepo) GetTimeOff(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.TimeOffBlock, error) {
	args := m.Called(ctx, barberID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TimeOffBlock), args.Error(1)
}

// fakeTxManager runs the function directly
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const (
	clientID = int64(100)
	barberID = int64(200)
)

type testEnv struct {
	svc          *Service
	appointments *mockAppointmentRepo
	policies     *mockPolicyRepo
	schedules    *mockScheduleRepo
	loc          *time.Location
	now          time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	env := &testEnv{
		appointments: new(mockAppointmentRepo),
		policies:     new(mockPolicyRepo),
		schedules:    new(mockScheduleRepo),
		loc:          loc,
		now:          time.Date(2026, 3, 2, 9, 0, 0, 0, loc), // Monday 09:00
	}
	env.svc = NewService(
		env.appointments,
		env.policies,
		env.schedules,
		fakeTxManager{},
		loc,
		fixedClock{t: env.now},
		nopLogger{},
	)
	return env
}

func (e *testEnv) withDefaultPolicy() {
	e.policies.On("GetShopPolicy", mock.Anything).Return(&domain.ShopPolicy{
		DaysBookableInAdvance:  30,
		MinBookAheadHours:      2,
		MinCancelAheadHours:    24,
		BookingIntervalMinutes: 15,
	}, nil)
	e.policies.On("GetBarberOverride", mock.Anything, barberID).
		Return(nil, policy.ErrOverrideNotFound)
}

// bookedAppointment is 29 hours ahead of the fixed clock: Tuesday 14:00
func bookedAppointment(loc *time.Location) *domain.Appointment {
	return &domain.Appointment{
		ID:              7,
		ClientID:        clientID,
		BarberID:        barberID,
		ServiceID:       3,
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, loc),
		StartTime:       "14:00",
		DurationMinutes: 30,
		Status:          domain.StatusBooked,
	}
}

func TestGetByID_Access(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		wantErr error
	}{
		{"client sees own appointment", clientID, nil},
		{"barber sees own appointment", barberID, nil},
		{"stranger is denied", 999, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.appointments.On("GetByID", mock.Anything, int64(7)).
				Return(bookedAppointment(env.loc), nil)

			resp, err := env.svc.GetByID(context.Background(), 7, tt.userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), resp.ID)
			assert.Equal(t, "2026-03-03", resp.Date)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.appointments.On("GetByID", mock.Anything, int64(7)).
		Return(nil, storage.ErrAppointmentNotFound)

	_, err := env.svc.GetByID(context.Background(), 7, clientID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID_RepositoryError(t *testing.T) {
	env := newTestEnv(t)
	env.appointments.On("GetByID", mock.Anything, int64(7)).
		Return(nil, errors.New("connection refused"))

	_, err := env.svc.GetByID(context.Background(), 7, clientID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCancel_ClientOutsideWindow(t *testing.T) {
	env := newTestEnv(t)
	env.withDefaultPolicy()
	env.appointments.On("GetByID", mock.Anything, int64(7)).
		Return(bookedAppointment(env.loc), nil)
	env.appointments.On("Cancel", mock.Anything, int64(7), "conflict").Return(nil)

	// 29 hours out, against a 24 hour window
	err := env.svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{
		UserID:             clientID,
		CancellationReason: "conflict",
	})

	require.NoError(t, err)
	env.appointments.AssertExpectations(t)
}

func TestCancel_ClientWithinWindow(t *testing.T) {
	env := newTestEnv(t)
	env.withDefaultPolicy()

	appt := bookedAppointment(env.loc)
	appt.Date = time.Date(2026, 3, 2, 0, 0, 0, 0, env.loc)
	appt.StartTime = "18:00" // 9 hours out
	env.appointments.On("GetByID", mock.Anything, int64(7)).Return(appt, nil)

	err := env.svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{
		UserID:             clientID,
		CancellationReason: "changed my mind",
	})

	var ruleErr *RuleViolationError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "start_time", ruleErr.Violation.Field)
	assert.NotEmpty(t, ruleErr.Violation.MessageEs)
	env.appointments.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_BarberBypassesWindow(t *testing.T) {
	env := newTestEnv(t)

	appt := bookedAppointment(env.loc)
	appt.Date = time.Date(2026, 3, 2, 0, 0, 0, 0, env.loc)
	appt.StartTime = "10:00" // one hour out
	env.appointments.On("GetByID", mock.Anything, int64(7)).Return(appt, nil)
	env.appointments.On("Cancel", mock.Anything, int64(7), "sick today").Return(nil)

	err := env.svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{
		UserID:             barberID,
		CancellationReason: "sick today",
	})

	require.NoError(t, err)
	// the barber path never consults the policy
	env.policies.AssertNotCalled(t, "GetShopPolicy", mock.Anything)
}

func TestCancel_FailsClosedWhenPolicyUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.policies.On("GetShopPolicy", mock.Anything).Return(nil, errors.New("connection refused"))
	env.appointments.On("GetByID", mock.Anything, int64(7)).
		Return(bookedAppointment(env.loc), nil)

	err := env.svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{
		UserID: clientID,
	})

	var ruleErr *RuleViolationError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "policy", ruleErr.Violation.Field)
	env.appointments.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_WrongStatus(t *testing.T) {
	env := newTestEnv(t)

	appt := bookedAppointment(env.loc)
	appt.Status = domain.StatusCompleted
	env.appointments.On("GetByID", mock.Anything, int64(7)).Return(appt, nil)

	err := env.svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{UserID: clientID})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

// mondayScheduleMocks arranges a bookable Monday 2026-03-09 for the barber:
// shop 09:00-18:00, barber 10:00-17:00, no time off, no other appointments.
func (e *testEnv) mondayScheduleMocks(moving *domain.Appointment) {
	openAt, closeAt := types.TimeString("09:00"), types.TimeString("18:00")
	monday := domain.DayHours{IsOpen: true, Open: &openAt, Close: &closeAt}

	e.schedules.On("GetDaySchedule", mock.Anything, barberID, time.Monday).
		Return(&domain.DaySchedule{
			BarberID:  barberID,
			Weekday:   time.Monday,
			Active:    true,
			StartTime: "10:00",
			EndTime:   "17:00",
		}, nil)
	e.schedules.On("GetWeekHours", mock.Anything).
		Return(&domain.WeekHours{Monday: monday}, nil)
	e.schedules.On("GetTimeOff", mock.Anything, barberID, mock.Anything, mock.Anything).
		Return([]*domain.TimeOffBlock{}, nil)
	// the day's appointments include the one being moved; it must not
	// block its own reschedule
	e.appointments.On("GetByBarberWithFilter", mock.Anything, mock.Anything).
		Return([]*domain.Appointment{moving}, nil)
}

func TestReschedule_Success(t *testing.T) {
	env := newTestEnv(t)
	env.withDefaultPolicy()

	appt := bookedAppointment(env.loc)
	env.appointments.On("GetByID", mock.Anything, int64(7)).Return(appt, nil)
	env.mondayScheduleMocks(appt)

	newDate := time.Date(2026, 3, 9, 0, 0, 0, 0, env.loc)
	env.appointments.On("Reschedule", mock.Anything, int64(7), newDate, types.TimeString("10:00")).
		Return(nil)

	resp, err := env.svc.Reschedule(context.Background(), 7, &models.RescheduleAppointmentRequest{
		UserID:       clientID,
		NewDate:      newDate,
		NewStartTime: "10:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", resp.Date)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	env.appointments.AssertExpectations(t)
}

func TestReschedule_SlotNotOffered(t *testing.T) {
	env := newTestEnv(t)
	env.withDefaultPolicy()

	appt := bookedAppointment(env.loc)
	env.appointments.On("GetByID", mock.Anything, int64(7)).Return(appt, nil)
	env.mondayScheduleMocks(appt)

	// 09:00 is inside shop hours but before the barber's window
	_, err := env.svc.Reschedule(context.Background(), 7, &models.RescheduleAppointmentRequest{
		UserID:       clientID,
		NewDate:      time.Date(2026, 3, 9, 0, 0, 0, 0, env.loc),
		NewStartTime: "09:00",
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	env.appointments.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReschedule_ClientHeldToCancellationWindow(t *testing.T) {
	env := newTestEnv(t)
	env.withDefaultPolicy()

	// old start only 9 hours out: the client cannot release the slot
	appt := bookedAppointment(env.loc)
	appt.Date = time.Date(2026, 3, 2, 0, 0, 0, 0, env.loc)
	appt.StartTime = "18:00"
	env.appointments.On("GetByID", mock.Anything, int64(7)).Return(appt, nil)

	_, err := env.svc.Reschedule(context.Background(), 7, &models.RescheduleAppointmentRequest{
		UserID:       clientID,
		NewDate:      time.Date(2026, 3, 9, 0, 0, 0, 0, env.loc),
		NewStartTime: "10:00",
	})

	var ruleErr *RuleViolationError
	require.ErrorAs(t, err, &ruleErr)
	assert.Contains(t, ruleErr.Violation.Message, "please call the shop")
}

func TestReschedule_BarberBypassesCancellationWindow(t *testing.T) {
	env := newTestEnv(t)
	env.withDefaultPolicy()

	appt := bookedAppointment(env.loc)
	appt.Date = time.Date(2026, 3, 2, 0, 0, 0, 0, env.loc)
	appt.StartTime = "18:00"
	env.appointments.On("GetByID", mock.Anything, int64(7)).Return(appt, nil)
	env.mondayScheduleMocks(appt)

	newDate := time.Date(2026, 3, 9, 0, 0, 0, 0, env.loc)
	env.appointments.On("Reschedule", mock.Anything, int64(7), newDate, types.TimeString("10:00")).
		Return(nil)

	_, err := env.svc.Reschedule(context.Background(), 7, &models.RescheduleAppointmentRequest{
		UserID:       barberID,
		NewDate:      newDate,
		NewStartTime: "10:00",
	})

	require.NoError(t, err)
}

func TestReschedule_NewStartHeldToPlacementRules(t *testing.T) {
	env := newTestEnv(t)
	env.withDefaultPolicy()

	appt := bookedAppointment(env.loc)
	env.appointments.On("GetByID", mock.Anything, int64(7)).Return(appt, nil)

	// unaligned start fails the interval rule before any slot lookup
	_, err := env.svc.Reschedule(context.Background(), 7, &models.RescheduleAppointmentRequest{
		UserID:       barberID,
		NewDate:      time.Date(2026, 3, 9, 0, 0, 0, 0, env.loc),
		NewStartTime: "10:07",
	})

	var ruleErr *RuleViolationError
	require.ErrorAs(t, err, &ruleErr)
	assert.Contains(t, ruleErr.Violation.Message, "intervals")
	env.schedules.AssertNotCalled(t, "GetDaySchedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestReschedule_InvalidInput(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Reschedule(context.Background(), 7, &models.RescheduleAppointmentRequest{
		UserID:       clientID,
		NewDate:      time.Date(2026, 3, 9, 0, 0, 0, 0, env.loc),
		NewStartTime: "later",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.svc.Reschedule(context.Background(), 7, &models.RescheduleAppointmentRequest{
		UserID:       clientID,
		NewStartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
