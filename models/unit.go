package models

import "time"

// OperatingHours is one weekday's opening window, expressed in minutes from
// midnight local to the unit (e.g. 540 for 9:00 AM, 1080 for 6:00 PM).
// The window is half-open: [Open, Close).
type OperatingHours struct {
	Open  int `bson:"open" json:"open"`
	Close int `bson:"close" json:"close"`
}

// BusinessUnit is a tenant's physical location. Weekly hours are indexed by
// time.Weekday (0 = Sunday); a nil entry means the unit is closed that day.
type BusinessUnit struct {
	ID        string              `bson:"id" json:"id"`
	TenantID  string              `bson:"tenant_id" json:"tenant_id"`
	Name      string              `bson:"name" json:"name"`
	Slug      string              `bson:"slug" json:"slug"`
	Timezone  string              `bson:"timezone" json:"timezone"` // IANA name, e.g. "America/Sao_Paulo"
	Hours     [7]*OperatingHours  `bson:"hours" json:"hours"`
	Policy    BookingPolicy       `bson:"policy" json:"policy"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}

// Location resolves the unit's IANA timezone, falling back to UTC when the
// name is missing or unknown.
func (u *BusinessUnit) Location() *time.Location {
	if u.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HoursFor returns the operating window for the given weekday, or nil when
// the unit is closed that day.
func (u *BusinessUnit) HoursFor(day time.Weekday) *OperatingHours {
	return u.Hours[int(day)]
}
