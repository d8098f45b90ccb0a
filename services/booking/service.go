package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "agendly/database/repository/appointment"
	"agendly/models"
	"agendly/services/notification"
	"agendly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService on top of the availability
// engine and the scoped repositories.
type DefaultBookingService struct {
	Engine       *AvailabilityEngine
	Appointments appointmentRepo.AppointmentRepository
	Notifier     notification.Dispatcher
	Now          func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) Availability(ctx context.Context, scope models.Scope, req models.AvailabilityRequest) ([]models.Slot, error) {
	return s.Engine.DailySlots(ctx, scope, req)
}

func (s *DefaultBookingService) Create(ctx context.Context, scope models.Scope, input CreateInput) (*models.Appointment, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	unit, err := s.Engine.Units.Get(ctx, scope)
	if err != nil {
		return nil, mapUnitErr(err)
	}
	policy := unit.Policy

	if input.Origin == models.OriginPublic && !policy.PublicBookingEnabled {
		return nil, NewValidationError("public booking is not enabled for this unit")
	}

	now := s.now()
	if input.Origin == models.OriginPublic {
		if err := checkLeadTime(now, input.StartAt, policy.MinLeadHours); err != nil {
			return nil, err
		}
	}

	svc, err := s.Engine.Catalog.GetService(ctx, scope, input.ServiceID)
	if err != nil {
		return nil, mapCatalogErr(err, "service")
	}
	if !svc.Active {
		return nil, NewNotFound("service")
	}

	date := input.StartAt.In(unit.Location()).Format("2006-01-02")

	// Never trust a client-supplied snapshot; recompute from current state.
	if err := s.validateSlot(ctx, scope, models.AvailabilityRequest{
		ProfessionalID: input.ProfessionalID,
		ServiceID:      input.ServiceID,
		Date:           date,
	}, input.StartAt); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:              uuid.New().String(),
		UnitID:          scope.UnitID,
		ProfessionalID:  input.ProfessionalID,
		ServiceID:       input.ServiceID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerEmail:   input.CustomerEmail,
		ScheduledAt:     input.StartAt.UTC(),
		DurationMinutes: svc.DurationMinutes,
		Status:          initialStatus(input.Origin),
		Notes:           input.Notes,
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}

	if err := s.Appointments.CreateExclusive(ctx, scope, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrOverlap) {
			return nil, NewSlotConflict()
		}
		return nil, fmt.Errorf("persisting appointment: %w", err)
	}

	s.Engine.InvalidateSnapshots(ctx, scope, appt.ProfessionalID, date)
	s.notify(ctx, appt, models.EventAppointmentCreated)
	return appt, nil
}

func (s *DefaultBookingService) Reschedule(ctx context.Context, scope models.Scope, appointmentID string, newStart time.Time) (*models.Appointment, error) {
	if newStart.IsZero() {
		return nil, NewValidationError("new start time is required")
	}

	appt, err := s.getAppointment(ctx, scope, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.StatusPending && appt.Status != models.StatusConfirmed {
		return nil, NewInvalidTransition(string(appt.Status), "rescheduled")
	}

	unit, err := s.Engine.Units.Get(ctx, scope)
	if err != nil {
		return nil, mapUnitErr(err)
	}
	policy := unit.Policy

	if appt.RescheduleCount >= policy.MaxReschedules {
		return nil, NewRescheduleLimitExceeded(policy.MaxReschedules)
	}
	if err := checkLeadTime(s.now(), newStart, policy.MinLeadHours); err != nil {
		return nil, err
	}

	oldDate := appt.ScheduledAt.In(unit.Location()).Format("2006-01-02")
	newDate := newStart.In(unit.Location()).Format("2006-01-02")

	// Recompute availability excluding this appointment's own booking, so
	// moving within (or back onto) its current slot succeeds.
	if err := s.validateSlot(ctx, scope, models.AvailabilityRequest{
		ProfessionalID:       appt.ProfessionalID,
		ServiceID:            appt.ServiceID,
		Date:                 newDate,
		ExcludeAppointmentID: appt.ID,
	}, newStart); err != nil {
		return nil, err
	}

	updated, err := s.Appointments.RescheduleExclusive(ctx, scope, appt.ID, newStart.UTC(), policy.MaxReschedules, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrOverlap):
			return nil, NewSlotConflict()
		case errors.Is(err, appointmentRepo.ErrRescheduleLimit):
			return nil, NewRescheduleLimitExceeded(policy.MaxReschedules)
		case errors.Is(err, appointmentRepo.ErrNotFound):
			return nil, NewNotFound("appointment")
		}
		return nil, fmt.Errorf("persisting reschedule: %w", err)
	}

	s.Engine.InvalidateSnapshots(ctx, scope, appt.ProfessionalID, oldDate, newDate)
	s.notify(ctx, updated, models.EventAppointmentRescheduled)
	return updated, nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, scope models.Scope, appointmentID, reason string, actor models.ActorKind) (*models.Appointment, error) {
	appt, err := s.getAppointment(ctx, scope, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return nil, NewInvalidTransition(string(appt.Status), string(models.StatusCancelled))
	}

	if actor != models.ActorAdmin {
		unit, err := s.Engine.Units.Get(ctx, scope)
		if err != nil {
			return nil, mapUnitErr(err)
		}
		window := time.Duration(unit.Policy.CancellationWindowHours) * time.Hour
		if s.now().Add(window).After(appt.ScheduledAt) {
			return nil, NewCancellationWindowViolation(unit.Policy.CancellationWindowHours)
		}
	}

	updated, err := s.Appointments.UpdateStatus(ctx, scope, appt.ID, models.StatusCancelled, reason, s.now().UTC())
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, NewNotFound("appointment")
		}
		return nil, fmt.Errorf("persisting cancellation: %w", err)
	}

	s.invalidateFor(ctx, scope, updated)
	s.notify(ctx, updated, models.EventAppointmentCancelled)
	return updated, nil
}

func (s *DefaultBookingService) AdminStatusChange(ctx context.Context, scope models.Scope, appointmentID string, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, NewValidationError("unknown appointment status")
	}

	appt, err := s.getAppointment(ctx, scope, appointmentID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(appt.Status, status) {
		return nil, NewInvalidTransition(string(appt.Status), string(status))
	}

	updated, err := s.Appointments.UpdateStatus(ctx, scope, appt.ID, status, "", s.now().UTC())
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, NewNotFound("appointment")
		}
		return nil, fmt.Errorf("persisting status change: %w", err)
	}

	if status == models.StatusCancelled || status == models.StatusNoShow {
		s.invalidateFor(ctx, scope, updated)
	}
	s.notify(ctx, updated, models.EventAppointmentStatus)
	return updated, nil
}

// validateSlot recomputes fresh availability and requires the requested start
// to be present and conflict-free in the grid.
func (s *DefaultBookingService) validateSlot(ctx context.Context, scope models.Scope, req models.AvailabilityRequest, start time.Time) error {
	slots, err := s.Engine.FreshDailySlots(ctx, scope, req)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if slot.Start.Equal(start) {
			if !slot.Available {
				return NewSlotConflict()
			}
			return nil
		}
	}
	// Not on the grid at all: off-granularity, past, or would not fit inside
	// operating hours.
	return NewOutsideHours()
}

func (s *DefaultBookingService) getAppointment(ctx context.Context, scope models.Scope, id string) (*models.Appointment, error) {
	if id == "" {
		return nil, NewValidationError("appointment reference is required")
	}
	appt, err := s.Appointments.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, NewNotFound("appointment")
		}
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	return appt, nil
}

func (s *DefaultBookingService) invalidateFor(ctx context.Context, scope models.Scope, appt *models.Appointment) {
	date := appt.ScheduledAt.Format("2006-01-02")
	if unit, err := s.Engine.Units.Get(ctx, scope); err == nil {
		date = appt.ScheduledAt.In(unit.Location()).Format("2006-01-02")
	}
	s.Engine.InvalidateSnapshots(ctx, scope, appt.ProfessionalID, date)
}

func (s *DefaultBookingService) notify(ctx context.Context, appt *models.Appointment, event models.NotificationEvent) {
	if s.Notifier == nil {
		return
	}
	payload := models.NotificationPayload{
		AppointmentID: appt.ID,
		UnitID:        appt.UnitID,
		Event:         event,
	}
	if err := s.Notifier.Dispatch(ctx, payload); err != nil {
		utils.GetLogger().Warn("failed to dispatch appointment event",
			zap.String("appointmentID", appt.ID),
			zap.String("event", string(event)),
			zap.Error(err))
	}
}

func checkLeadTime(now, start time.Time, minLeadHours int) error {
	if now.Add(time.Duration(minLeadHours) * time.Hour).After(start) {
		return NewLeadTimeViolation(minLeadHours)
	}
	return nil
}

func validateCreate(input CreateInput) error {
	switch {
	case input.ProfessionalID == "":
		return NewValidationError("professional_id is required")
	case input.ServiceID == "":
		return NewValidationError("service_id is required")
	case input.CustomerName == "":
		return NewValidationError("customer_name is required")
	case input.CustomerPhone == "":
		return NewValidationError("customer_phone is required")
	case input.StartAt.IsZero():
		return NewValidationError("start_at is required")
	}
	switch input.Origin {
	case models.OriginPublic, models.OriginInternal:
	default:
		return NewValidationError("origin must be public or internal")
	}
	return nil
}
