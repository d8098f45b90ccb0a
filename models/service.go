package models

// Service is an offering of a unit. DurationMinutes drives slot generation;
// an appointment snapshots it at booking time, so later edits here never
// touch existing bookings.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	UnitID          string  `bson:"unit_id" json:"unit_id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
	Price           float64 `bson:"price" json:"price"`
	Active          bool    `bson:"active" json:"active"`
}
