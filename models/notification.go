package models

// NotificationEvent names a lifecycle transition worth telling someone about.
type NotificationEvent string

const (
	EventAppointmentCreated     NotificationEvent = "appointment.created"
	EventAppointmentRescheduled NotificationEvent = "appointment.rescheduled"
	EventAppointmentCancelled   NotificationEvent = "appointment.cancelled"
	EventAppointmentStatus      NotificationEvent = "appointment.status_changed"
)

// NotificationPayload is what the dispatch queue carries per event.
type NotificationPayload struct {
	AppointmentID string            `json:"appointment_id"`
	UnitID        string            `json:"unit_id"`
	Event         NotificationEvent `json:"event"`
}
