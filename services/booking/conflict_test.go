package booking

import (
	"testing"
	"time"

	"agendly/models"
)

func slotAt(hhmm string, durationMin int) models.Slot {
	start, err := time.Parse("2006-01-02 15:04", "2025-03-10 "+hhmm)
	if err != nil {
		panic(err)
	}
	return models.Slot{Start: start, End: start.Add(time.Duration(durationMin) * time.Minute), Available: true}
}

func apptAt(id, hhmm string, durationMin int, status models.AppointmentStatus) models.Appointment {
	s := slotAt(hhmm, durationMin)
	return models.Appointment{
		ID:              id,
		UnitID:          testUnit,
		ProfessionalID:  testProf,
		ScheduledAt:     s.Start,
		DurationMinutes: durationMin,
		Status:          status,
	}
}

func TestAnnotateConflictsHalfOpenBoundary(t *testing.T) {
	// Existing 10:00-10:45: the 10:30 candidate overlaps, the 10:45
	// candidate touches the boundary and does not.
	candidates := []models.Slot{slotAt("10:00", 30), slotAt("10:30", 30), slotAt("10:45", 30), slotAt("11:00", 30)}
	existing := []models.Appointment{apptAt("a1", "10:00", 45, models.StatusConfirmed)}

	annotated := AnnotateConflicts(candidates, existing, "")

	if len(annotated) != len(candidates) {
		t.Fatalf("grid shrank from %d to %d, conflicts must annotate, not remove", len(candidates), len(annotated))
	}
	expect := map[string]bool{"10:00": false, "10:30": false, "10:45": true, "11:00": true}
	for _, s := range annotated {
		key := s.Start.Format("15:04")
		if s.Available != expect[key] {
			t.Errorf("slot %s available = %v, want %v", key, s.Available, expect[key])
		}
	}
}

func TestAnnotateConflictsIgnoresCancelled(t *testing.T) {
	candidates := []models.Slot{slotAt("10:00", 30)}
	existing := []models.Appointment{apptAt("a1", "10:00", 45, models.StatusCancelled)}

	annotated := AnnotateConflicts(candidates, existing, "")
	if !annotated[0].Available {
		t.Error("a cancelled appointment must not block its old slot")
	}
}

func TestAnnotateConflictsSelfExclusion(t *testing.T) {
	candidates := []models.Slot{slotAt("10:00", 30), slotAt("10:30", 30)}
	existing := []models.Appointment{apptAt("mine", "10:00", 45, models.StatusConfirmed)}

	annotated := AnnotateConflicts(candidates, existing, "mine")
	for _, s := range annotated {
		if !s.Available {
			t.Errorf("slot %s blocked by the excluded appointment", s.Start.Format("15:04"))
		}
	}
}

func TestAnnotateConflictsDoesNotMutateInput(t *testing.T) {
	candidates := []models.Slot{slotAt("10:00", 30)}
	existing := []models.Appointment{apptAt("a1", "10:00", 45, models.StatusConfirmed)}

	_ = AnnotateConflicts(candidates, existing, "")
	if !candidates[0].Available {
		t.Error("input slice was mutated")
	}
}
