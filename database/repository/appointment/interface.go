package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"agendly/models"
)

// Sentinel errors the lifecycle layer maps onto its own error codes.
var (
	// ErrNotFound is returned when an appointment is absent or outside the
	// caller's unit.
	ErrNotFound = errors.New("appointment not found")

	// ErrOverlap is returned when an exclusive write loses to an existing
	// booking for the same professional. It is the storage-level face of a
	// slot conflict and the only error expected under concurrent load.
	ErrOverlap = errors.New("appointment overlaps an existing booking")

	// ErrRescheduleLimit is returned when the guarded reschedule update finds
	// the count already at its limit.
	ErrRescheduleLimit = errors.New("reschedule limit reached")
)

// AppointmentRepository provides scoped access to appointments. CreateExclusive
// and RescheduleExclusive run their overlap check and write inside one
// transaction, so of two concurrent conflicting attempts at most one commits;
// the loser gets ErrOverlap.
type AppointmentRepository interface {
	GetByID(ctx context.Context, scope models.Scope, id string) (*models.Appointment, error)

	// ListForProfessional returns the professional's non-cancelled
	// appointments intersecting [from, to), ordered by start time.
	ListForProfessional(ctx context.Context, scope models.Scope, professionalID string, from, to time.Time) ([]models.Appointment, error)

	// CreateExclusive inserts appt unless it overlaps a non-cancelled
	// appointment for the same professional.
	CreateExclusive(ctx context.Context, scope models.Scope, appt *models.Appointment) error

	// RescheduleExclusive moves the appointment to newStart, increments its
	// reschedule count and stamps updatedAt, unless the new interval overlaps
	// another booking or the count has reached maxReschedules.
	RescheduleExclusive(ctx context.Context, scope models.Scope, id string, newStart time.Time, maxReschedules int, updatedAt time.Time) (*models.Appointment, error)

	// UpdateStatus sets the appointment's status (and cancellation reason,
	// when cancelling) and stamps updatedAt.
	UpdateStatus(ctx context.Context, scope models.Scope, id string, status models.AppointmentStatus, reason string, updatedAt time.Time) (*models.Appointment, error)
}
