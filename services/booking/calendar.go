package booking

import (
	"time"

	"agendly/models"
)

// DayWindow is a unit's half-open operating interval [Open, Close) for one
// date, materialized in the unit's local time.
type DayWindow struct {
	Open  time.Time
	Close time.Time
}

// ResolveDay looks up the unit's operating window for the given date. The
// second return value is false when the unit is closed that day. Pure lookup,
// no side effects.
func ResolveDay(unit *models.BusinessUnit, date time.Time) (DayWindow, bool) {
	loc := unit.Location()
	local := date.In(loc)

	hours := unit.HoursFor(local.Weekday())
	if hours == nil || hours.Close <= hours.Open {
		return DayWindow{}, false
	}

	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return DayWindow{
		Open:  midnight.Add(time.Duration(hours.Open) * time.Minute),
		Close: midnight.Add(time.Duration(hours.Close) * time.Minute),
	}, true
}
