package models

// BookingPolicy holds a unit's scheduling rules.
type BookingPolicy struct {
	MinLeadHours            int  `bson:"min_lead_hours" json:"min_lead_hours"`
	CancellationWindowHours int  `bson:"cancellation_window_hours" json:"cancellation_window_hours"`
	MaxReschedules          int  `bson:"max_reschedules" json:"max_reschedules"`
	PublicBookingEnabled    bool `bson:"public_booking_enabled" json:"public_booking_enabled"`
}
