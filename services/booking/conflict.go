package booking

import "agendly/models"

// AnnotateConflicts marks each candidate unavailable when it overlaps an
// existing non-cancelled appointment for the professional, under half-open
// interval intersection: overlap iff candidate.Start < existing.End and
// candidate.End > existing.Start. No candidate is removed; callers can render
// an unavailable slot differently from a nonexistent one. An appointment
// whose id equals excludeID is ignored, which lets a reschedule check
// availability against everything but its own current booking.
func AnnotateConflicts(candidates []models.Slot, existing []models.Appointment, excludeID string) []models.Slot {
	annotated := make([]models.Slot, len(candidates))
	copy(annotated, candidates)

	for i := range annotated {
		for j := range existing {
			appt := &existing[j]
			if appt.ID == excludeID {
				continue
			}
			if appt.Status == models.StatusCancelled {
				continue
			}
			if appt.Overlaps(annotated[i].Start, annotated[i].End) {
				annotated[i].Available = false
				break
			}
		}
	}
	return annotated
}
