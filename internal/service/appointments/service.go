package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgarza/barberbook/internal/domain"
	appointmentRepo "github.com/dgarza/barberbook/internal/infra/storage/appointment"
	policyRepo "github.com/dgarza/barberbook/internal/infra/storage/policy"
	"github.com/dgarza/barberbook/internal/service/appointments/models"
	availableSlots "github.com/dgarza/barberbook/internal/usecase/get_available_slots"
	"github.com/dgarza/barberbook/internal/usecase/validate_booking"
	"github.com/dgarza/barberbook/pkg/types"
)

// Service handles the lifecycle of existing appointments: lookup,
// cancellation and rescheduling. Creation lives in its own usecase.
type Service struct {
	appointmentRepo AppointmentRepository
	policyRepo      PolicyRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates a new appointments service
func NewService(
	appointmentRepo AppointmentRepository,
	policyRepo PolicyRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	location *time.Location,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		policyRepo:      policyRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		location:        location,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID fetches one appointment. Only the client or the barber of the
// appointment may see it.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.getAppointment(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if appt.ClientID != userID && appt.BarberID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// Cancel cancels an appointment. The client is held to the cancellation
// window; the barber may cancel at any time. Rule evaluation fails closed
// when the policy cannot be loaded.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, req.UserID)

	appt, err := s.getAppointment(ctx, id, "Cancel")
	if err != nil {
		return err
	}

	isClient := appt.ClientID == req.UserID
	if !isClient && appt.BarberID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.UserID, id)
		return ErrAccessDenied
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appt.Status)
		return ErrCannotCancel
	}

	if isClient {
		now := s.timeProvider.Now()

		policy, err := s.resolvePolicy(ctx, appt.BarberID)
		if err != nil {
			s.logger.Error("Cancel: failed to resolve policy for barber=%d: %v", appt.BarberID, err)
			return &RuleViolationError{Violation: validate_booking.PolicyUnavailableViolation()}
		}

		start, err := s.absoluteStart(appt.Date, appt.StartTime)
		if err != nil {
			return fmt.Errorf("%w: Cancel - invalid stored start time: %v", ErrInternal, err)
		}

		if violation := validate_booking.EvaluateRules(start, now, s.location, domain.ActionCancel, policy); violation != nil {
			s.logger.Warn("Cancel: rule violated for appointment id=%d: %s", id, violation.Message)
			return &RuleViolationError{Violation: violation}
		}
	}

	if err := s.appointmentRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

// Reschedule moves an appointment to a new slot. Releasing the old slot is
// governed by the cancellation window, placing the new one by the create
// rules plus a slot availability check; everything runs in one serializable
// transaction so the new slot cannot be double-booked.
func (s *Service) Reschedule(ctx context.Context, id int64, req *models.RescheduleAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Reschedule: moving appointment id=%d to %s %s by user=%d",
		id, req.NewDate.Format(domain.DateFormat), req.NewStartTime, req.UserID)

	if err := req.NewStartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid newStartTime: %v", ErrInvalidInput, err)
	}
	if req.NewDate.IsZero() {
		return nil, fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	var result *domain.Appointment

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := s.getAppointment(txCtx, id, "Reschedule")
		if err != nil {
			return err
		}

		isClient := appt.ClientID == req.UserID
		if !isClient && appt.BarberID != req.UserID {
			s.logger.Warn("Reschedule: access denied for user=%d to appointment id=%d", req.UserID, id)
			return ErrAccessDenied
		}

		if !appt.CanBeRescheduled() {
			s.logger.Warn("Reschedule: appointment id=%d cannot be rescheduled, status=%s", id, appt.Status)
			return ErrCannotReschedule
		}

		policy, err := s.resolvePolicy(txCtx, appt.BarberID)
		if err != nil {
			s.logger.Error("Reschedule: failed to resolve policy for barber=%d: %v", appt.BarberID, err)
			return &RuleViolationError{Violation: validate_booking.PolicyUnavailableViolation()}
		}

		oldStart, err := s.absoluteStart(appt.Date, appt.StartTime)
		if err != nil {
			return fmt.Errorf("%w: Reschedule - invalid stored start time: %v", ErrInternal, err)
		}
		newStart, err := s.absoluteStart(req.NewDate, req.NewStartTime)
		if err != nil {
			return fmt.Errorf("%w: invalid newStartTime: %v", ErrInvalidInput, err)
		}

		// The client releases the old slot under the cancellation window;
		// the barber moves appointments freely.
		if isClient {
			if violation := validate_booking.EvaluateRules(oldStart, now, s.location, domain.ActionCancel, policy); violation != nil {
				s.logger.Warn("Reschedule: cancellation rule violated for appointment id=%d: %s", id, violation.Message)
				return &RuleViolationError{Violation: violation}
			}
		}

		// Placing the new start follows the create rules for everyone.
		if violation := validate_booking.EvaluateRules(newStart, now, s.location, domain.ActionCreate, policy); violation != nil {
			s.logger.Warn("Reschedule: booking rule violated for appointment id=%d: %s", id, violation.Message)
			return &RuleViolationError{Violation: violation}
		}

		slots, err := s.bookableSlots(txCtx, appt, req.NewDate, policy, now)
		if err != nil {
			return err
		}
		if !slotOffered(slots, req.NewStartTime) {
			s.logger.Warn("Reschedule: slot %s not available for barber=%d on %s",
				req.NewStartTime, appt.BarberID, req.NewDate.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		if err := s.appointmentRepo.Reschedule(txCtx, id, req.NewDate, req.NewStartTime); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("Reschedule: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}

		appt.Date = req.NewDate
		appt.StartTime = req.NewStartTime
		result = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reschedule: successfully moved appointment id=%d", id)
	return models.FromDomainAppointment(result), nil
}

func (s *Service) getAppointment(ctx context.Context, id int64, method string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", method, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return appt, nil
}

// resolvePolicy loads and merges the shop policy with the barber's override
func (s *Service) resolvePolicy(ctx context.Context, barberID int64) (domain.EffectivePolicy, error) {
	shopPolicy, err := s.policyRepo.GetShopPolicy(ctx)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return domain.EffectivePolicy{}, err
		}
		shopPolicy = &domain.ShopPolicy{
			DaysBookableInAdvance:  domain.DefaultDaysBookableInAdvance,
			MinBookAheadHours:      domain.DefaultMinBookAheadHours,
			MinCancelAheadHours:    domain.DefaultMinCancelAheadHours,
			BookingIntervalMinutes: domain.DefaultBookingIntervalMinutes,
		}
	}

	override, err := s.policyRepo.GetBarberOverride(ctx, barberID)
	if err != nil && !errors.Is(err, policyRepo.ErrOverrideNotFound) {
		return domain.EffectivePolicy{}, err
	}

	return domain.ResolvePolicy(*shopPolicy, override), nil
}

// absoluteStart combines a calendar date and wall-clock time into a zoned
// timestamp in the shop timezone.
func (s *Service) absoluteStart(date time.Time, start types.TimeString) (time.Time, error) {
	minutes, err := start.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	// built from components so the wall-clock start holds on DST days
	return time.Date(date.Year(), date.Month(), date.Day(), 0, minutes, 0, 0, s.location), nil
}

// bookableSlots regenerates the barber's bookable slots for the target date,
// ignoring the appointment being moved so it does not block itself.
func (s *Service) bookableSlots(
	ctx context.Context,
	appt *domain.Appointment,
	date time.Time,
	policy domain.EffectivePolicy,
	now time.Time,
) ([]domain.TimeSlot, error) {
	// weekday from the date's calendar components, not the instant shifted
	// into the shop timezone
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.location)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekday := dayStart.Weekday()

	daySchedule, err := s.scheduleRepo.GetDaySchedule(ctx, appt.BarberID, weekday)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get day schedule: %v", ErrInternal, err)
	}

	weekHours, err := s.scheduleRepo.GetWeekHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get shop hours: %v", ErrInternal, err)
	}

	timeOff, err := s.scheduleRepo.GetTimeOff(ctx, appt.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	appointments, err := s.appointmentRepo.GetByBarberWithFilter(ctx, domain.BarberAppointmentsFilter{
		BarberID:  appt.BarberID,
		StartDate: &dayStart,
		EndDate:   &dayStart,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	others := make([]*domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.ID != appt.ID {
			others = append(others, a)
		}
	}

	var shopHours domain.DayHours
	if weekHours != nil {
		shopHours = weekHours.ForWeekday(weekday)
	}

	slots, err := availableSlots.GenerateAvailableSlots(availableSlots.GenerateArgs{
		Date:                   date,
		Now:                    now,
		Location:               s.location,
		ServiceDurationMinutes: appt.DurationMinutes,
		Policy:                 policy,
		DaySchedule:            daySchedule,
		ShopHours:              shopHours,
		Appointments:           others,
		TimeOff:                timeOff,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	return slots, nil
}

func slotOffered(slots []domain.TimeSlot, start types.TimeString) bool {
	for _, slot := range slots {
		if slot.Start == start {
			return true
		}
	}
	return false
}
