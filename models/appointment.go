package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Terminal reports whether no further transition is allowed from s.
func (s AppointmentStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// BookingOrigin distinguishes staff-created bookings from public self-service.
type BookingOrigin string

const (
	OriginInternal BookingOrigin = "internal"
	OriginPublic   BookingOrigin = "public"
)

// ActorKind identifies who is acting on an appointment.
type ActorKind string

const (
	ActorCustomer ActorKind = "customer"
	ActorAdmin    ActorKind = "admin"
)

// Appointment is a confirmed reservation of a professional's time.
// DurationMinutes is snapshotted from the service at creation and is never
// recomputed afterwards.
type Appointment struct {
	ID                 string            `bson:"id" json:"id"`
	UnitID             string            `bson:"unit_id" json:"unit_id"`
	ProfessionalID     string            `bson:"professional_id" json:"professional_id"`
	ServiceID          string            `bson:"service_id" json:"service_id"`
	CustomerName       string            `bson:"customer_name" json:"customer_name"`
	CustomerPhone      string            `bson:"customer_phone" json:"customer_phone"`
	CustomerEmail      string            `bson:"customer_email,omitempty" json:"customer_email,omitempty"`
	ScheduledAt        time.Time         `bson:"scheduled_at" json:"scheduled_at"`
	DurationMinutes    int               `bson:"duration_minutes" json:"duration_minutes"`
	Status             AppointmentStatus `bson:"status" json:"status"`
	RescheduleCount    int               `bson:"reschedule_count" json:"reschedule_count"`
	Notes              string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CancellationReason string            `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time         `bson:"updated_at" json:"updated_at"`
}

// EndsAt is the exclusive end of the appointment's reserved interval.
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Overlaps reports whether the half-open interval [start, end) intersects
// this appointment's reserved interval.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return start.Before(a.EndsAt()) && end.After(a.ScheduledAt)
}
