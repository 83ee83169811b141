package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgarza/barberbook/internal/domain"
	policyRepo "github.com/dgarza/barberbook/internal/infra/storage/policy"
	serviceRepo "github.com/dgarza/barberbook/internal/infra/storage/service"
	availableSlots "github.com/dgarza/barberbook/internal/usecase/get_available_slots"
	"github.com/dgarza/barberbook/internal/usecase/validate_booking"
	"github.com/dgarza/barberbook/pkg/types"
)

// UseCase books one appointment. The rule validation, slot collision check
// and insert run inside one serializable transaction so two clients racing
// for the same slot cannot both win.
type UseCase struct {
	appointmentRepo AppointmentRepository
	policyRepo      PolicyRepository
	scheduleRepo    ScheduleRepository
	serviceRepo     ServiceRepository
	txManager       TransactionManager
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates a new instance of the usecase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	policyRepo PolicyRepository,
	scheduleRepo ScheduleRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		policyRepo:      policyRepo,
		scheduleRepo:    scheduleRepo,
		serviceRepo:     serviceRepo,
		txManager:       txManager,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute runs the usecase
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, barber=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	proposedStart, err := uc.absoluteStart(req)
	if err != nil {
		return nil, err
	}

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Resolve the effective policy inside the transaction so a policy
		// update does not race the collision check.
		policy, err := uc.resolvePolicy(txCtx, req.BarberID)
		if err != nil {
			return err
		}

		// Re-validate the booking rules at mutation time; slots shown to
		// the client may have been generated under an older policy.
		if violation := validate_booking.EvaluateRules(proposedStart, now, uc.location, domain.ActionCreate, policy); violation != nil {
			uc.logger.Warn("CreateBooking: rule violated for barber=%d at %s: %s",
				req.BarberID, req.StartTime, violation.Message)
			return &RuleViolationError{Violation: violation}
		}

		// Recompute the bookable slots under the transaction; the
		// appointment read locks the day's rows (FOR UPDATE).
		slots, err := uc.bookableSlots(txCtx, req, service.DurationMinutes, policy, now)
		if err != nil {
			return err
		}

		if !slotOffered(slots, req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s not available for barber=%d on %s",
				req.StartTime, req.BarberID, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		appointment := &domain.Appointment{
			ClientID:        req.ClientID,
			BarberID:        req.BarberID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusBooked,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		BarberID:        result.BarberID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// absoluteStart combines the request date and wall-clock start into a zoned
// timestamp in the shop timezone.
func (uc *UseCase) absoluteStart(req *Request) (time.Time, error) {
	minutes, err := req.StartTime.Minutes()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	// built from components so the wall-clock start holds on DST days
	return time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, minutes, 0, 0, uc.location), nil
}

// resolvePolicy loads and merges the shop policy with the barber's override
func (uc *UseCase) resolvePolicy(ctx context.Context, barberID int64) (domain.EffectivePolicy, error) {
	shopPolicy, err := uc.policyRepo.GetShopPolicy(ctx)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("CreateBooking: failed to load shop policy: %v", err)
			return domain.EffectivePolicy{}, fmt.Errorf("%w: failed to load shop policy: %v", ErrInternal, err)
		}
		shopPolicy = &domain.ShopPolicy{
			DaysBookableInAdvance:  domain.DefaultDaysBookableInAdvance,
			MinBookAheadHours:      domain.DefaultMinBookAheadHours,
			MinCancelAheadHours:    domain.DefaultMinCancelAheadHours,
			BookingIntervalMinutes: domain.DefaultBookingIntervalMinutes,
		}
	}

	override, err := uc.policyRepo.GetBarberOverride(ctx, barberID)
	if err != nil && !errors.Is(err, policyRepo.ErrOverrideNotFound) {
		uc.logger.Error("CreateBooking: failed to load override for barber=%d: %v", barberID, err)
		return domain.EffectivePolicy{}, fmt.Errorf("%w: failed to load barber override: %v", ErrInternal, err)
	}

	return domain.ResolvePolicy(*shopPolicy, override), nil
}

// bookableSlots regenerates the barber's bookable slots for the request date
func (uc *UseCase) bookableSlots(
	ctx context.Context,
	req *Request,
	serviceDuration int,
	policy domain.EffectivePolicy,
	now time.Time,
) ([]domain.TimeSlot, error) {
	// weekday from the date's calendar components, not the instant shifted
	// into the shop timezone
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekday := dayStart.Weekday()

	daySchedule, err := uc.scheduleRepo.GetDaySchedule(ctx, req.BarberID, weekday)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get day schedule: %v", ErrInternal, err)
	}

	weekHours, err := uc.scheduleRepo.GetWeekHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get shop hours: %v", ErrInternal, err)
	}

	timeOff, err := uc.scheduleRepo.GetTimeOff(ctx, req.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.GetByBarberWithFilter(ctx, domain.BarberAppointmentsFilter{
		BarberID:  req.BarberID,
		StartDate: &dayStart,
		EndDate:   &dayStart,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	var shopHours domain.DayHours
	if weekHours != nil {
		shopHours = weekHours.ForWeekday(weekday)
	}

	slots, err := availableSlots.GenerateAvailableSlots(availableSlots.GenerateArgs{
		Date:                   req.Date,
		Now:                    now,
		Location:               uc.location,
		ServiceDurationMinutes: serviceDuration,
		Policy:                 policy,
		DaySchedule:            daySchedule,
		ShopHours:              shopHours,
		Appointments:           appointments,
		TimeOff:                timeOff,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	return slots, nil
}

// slotOffered reports whether start is among the generated slot starts
func slotOffered(slots []domain.TimeSlot, start types.TimeString) bool {
	for _, slot := range slots {
		if slot.Start == start {
			return true
		}
	}
	return false
}
