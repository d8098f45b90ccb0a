package booking

import (
	"time"

	"agendly/models"
)

// GenerateCandidates produces the ascending grid of candidate slots of the
// given service duration inside window. Candidates step at granularityMin
// minutes from the first grid-aligned time at or after opening; a candidate
// whose end would pass closing time is dropped entirely, not marked
// unavailable. When the closing time leaves an off-grid remainder, one final
// candidate ending exactly at close is appended, so a 45-minute service in a
// 09:00-18:00 day still gets its 17:15 start. Pure function of its inputs.
func GenerateCandidates(window DayWindow, durationMin, granularityMin int) []models.Slot {
	if durationMin <= 0 || granularityMin <= 0 {
		return nil
	}

	duration := time.Duration(durationMin) * time.Minute
	step := time.Duration(granularityMin) * time.Minute

	// The grid is anchored at local midnight, so the first candidate is the
	// first multiple of the granularity at or after opening.
	loc := window.Open.Location()
	midnight := time.Date(window.Open.Year(), window.Open.Month(), window.Open.Day(), 0, 0, 0, 0, loc)
	offset := window.Open.Sub(midnight)
	aligned := (offset + step - 1) / step * step

	var slots []models.Slot
	for start := midnight.Add(aligned); ; start = start.Add(step) {
		end := start.Add(duration)
		if end.After(window.Close) {
			break
		}
		slots = append(slots, models.Slot{Start: start, End: end, Available: true})
	}

	// Last-fit candidate flush against closing time.
	lastFit := window.Close.Add(-duration)
	if !lastFit.Before(window.Open) {
		if len(slots) == 0 || lastFit.After(slots[len(slots)-1].Start) {
			slots = append(slots, models.Slot{Start: lastFit, End: window.Close, Available: true})
		}
	}
	return slots
}

// FilterPast drops candidates that start at or before now, but only when the
// window's date is "today" on the unit's clock. This filter is absolute: it
// applies regardless of any lead-time policy, which is checked separately at
// booking time.
func FilterPast(slots []models.Slot, window DayWindow, now time.Time) []models.Slot {
	localNow := now.In(window.Open.Location())
	sameDay := localNow.Year() == window.Open.Year() &&
		localNow.Month() == window.Open.Month() &&
		localNow.Day() == window.Open.Day()
	if !sameDay {
		return slots
	}

	filtered := slots[:0:0]
	for _, s := range slots {
		if s.Start.After(now) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
