package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dgarza/barberbook/internal/domain"
	policyRepo "github.com/dgarza/barberbook/internal/infra/storage/policy"
	serviceRepo "github.com/dgarza/barberbook/internal/infra/storage/service"
)

// UseCase computes the bookable slots for one barber, service and date
type UseCase struct {
	policyRepo      PolicyRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates a new instance of the usecase
func NewUseCase(
	policyRepo PolicyRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		policyRepo:      policyRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute runs the usecase.
//
// Collaborator read failures on this path degrade to an empty slot list with
// a logged diagnostic instead of an error: rendering "no slots" beats
// surfacing an internal failure to a booking client. Only caller mistakes
// (unknown service, bad input) are returned as errors.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barber=%d, service=%d, date=%s",
		req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// The service is a hard dependency: without its duration there is
	// nothing to generate.
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	emptyResponse := &Response{
		Date:            req.Date,
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           []domain.TimeSlot{},
	}

	// Resolve the effective policy. A missing row falls back to defaults;
	// a failed read degrades to zero availability.
	policy, degraded := uc.resolvePolicy(ctx, req.BarberID)
	if degraded {
		return emptyResponse, nil
	}

	// The four remaining reads are independent; fan out and join before
	// filtering. The weekday comes from the date's calendar components, not
	// from the instant shifted into the shop timezone.
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekday := dayStart.Weekday()

	var (
		daySchedule  *domain.DaySchedule
		weekHours    *domain.WeekHours
		appointments []*domain.Appointment
		timeOff      []*domain.TimeOffBlock
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daySchedule, err = uc.scheduleRepo.GetDaySchedule(gctx, req.BarberID, weekday)
		return err
	})
	g.Go(func() error {
		var err error
		weekHours, err = uc.scheduleRepo.GetWeekHours(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		appointments, err = uc.appointmentRepo.GetByBarberWithFilter(gctx, domain.BarberAppointmentsFilter{
			BarberID:  req.BarberID,
			StartDate: &dayStart,
			EndDate:   &dayStart,
		})
		return err
	})
	g.Go(func() error {
		var err error
		timeOff, err = uc.scheduleRepo.GetTimeOff(gctx, req.BarberID, dayStart, dayEnd)
		return err
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("GetAvailableSlots: schedule/appointment reads failed for barber=%d: %v",
			req.BarberID, err)
		return emptyResponse, nil
	}

	var shopHours domain.DayHours
	if weekHours != nil {
		shopHours = weekHours.ForWeekday(weekday)
	}

	slots, err := GenerateAvailableSlots(GenerateArgs{
		Date:                   req.Date,
		Now:                    now,
		Location:               uc.location,
		ServiceDurationMinutes: service.DurationMinutes,
		Policy:                 policy,
		DaySchedule:            daySchedule,
		ShopHours:              shopHours,
		Appointments:           appointments,
		TimeOff:                timeOff,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d slots for barber=%d, service=%d, date=%s",
		len(slots), req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

// resolvePolicy loads and merges the shop policy with the barber's override.
// Missing rows fall back cleanly; read failures report degraded=true.
func (uc *UseCase) resolvePolicy(ctx context.Context, barberID int64) (domain.EffectivePolicy, bool) {
	shopPolicy, err := uc.policyRepo.GetShopPolicy(ctx)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to load shop policy: %v", err)
			return domain.EffectivePolicy{}, true
		}
		uc.logger.Info("GetAvailableSlots: no shop policy configured, using defaults")
		shopPolicy = &domain.ShopPolicy{
			DaysBookableInAdvance:  domain.DefaultDaysBookableInAdvance,
			MinBookAheadHours:      domain.DefaultMinBookAheadHours,
			MinCancelAheadHours:    domain.DefaultMinCancelAheadHours,
			BookingIntervalMinutes: domain.DefaultBookingIntervalMinutes,
		}
	}

	override, err := uc.policyRepo.GetBarberOverride(ctx, barberID)
	if err != nil && !errors.Is(err, policyRepo.ErrOverrideNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to load override for barber=%d: %v", barberID, err)
		return domain.EffectivePolicy{}, true
	}

	return domain.ResolvePolicy(*shopPolicy, override), false
}
