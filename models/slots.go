package models

import "time"

// Slot is a candidate appointment start within a unit's operating hours.
// Slots are ephemeral: they are computed per request and never persisted.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// AvailabilityRequest identifies a slot-grid computation.
type AvailabilityRequest struct {
	UnitID               string
	ProfessionalID       string
	ServiceID            string
	Date                 string // "2006-01-02" in the unit's local time
	ExcludeAppointmentID string // non-empty when rechecking for a reschedule
}
