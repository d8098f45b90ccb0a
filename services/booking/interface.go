package booking

import (
	"context"
	"time"

	"agendly/models"
)

// CreateInput carries everything needed to book a slot.
type CreateInput struct {
	ProfessionalID string               `json:"professional_id"`
	ServiceID      string               `json:"service_id"`
	CustomerName   string               `json:"customer_name"`
	CustomerPhone  string               `json:"customer_phone"`
	CustomerEmail  string               `json:"customer_email,omitempty"`
	StartAt        time.Time            `json:"start_at"`
	Notes          string               `json:"notes,omitempty"`
	Origin         models.BookingOrigin `json:"origin"`
}

// BookingService is the appointment lifecycle manager: it recomputes
// availability server-side, enforces the unit's policy, and persists
// transitions atomically with respect to concurrent conflicting attempts.
type BookingService interface {
	// Availability computes the slot grid for one professional, service and date.
	Availability(ctx context.Context, scope models.Scope, req models.AvailabilityRequest) ([]models.Slot, error)

	// Create books a new appointment after re-validating the requested slot.
	Create(ctx context.Context, scope models.Scope, input CreateInput) (*models.Appointment, error)

	// Reschedule moves a pending or confirmed appointment to a new start time.
	Reschedule(ctx context.Context, scope models.Scope, appointmentID string, newStart time.Time) (*models.Appointment, error)

	// Cancel moves an appointment to cancelled. Customer actors are held to
	// the unit's cancellation window; admin actors bypass it.
	Cancel(ctx context.Context, scope models.Scope, appointmentID, reason string, actor models.ActorKind) (*models.Appointment, error)

	// AdminStatusChange applies an administrative transition with no policy
	// checks beyond the allowed-transition table.
	AdminStatusChange(ctx context.Context, scope models.Scope, appointmentID string, status models.AppointmentStatus) (*models.Appointment, error)
}
