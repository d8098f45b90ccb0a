package booking

import (
	"context"
	"sync"
	"time"

	"agendly/models"

	appointmentRepo "agendly/database/repository/appointment"
	catalogRepo "agendly/database/repository/catalog"
	unitRepo "agendly/database/repository/unit"
)

// ---------- In-memory repository fakes ----------

// The fakes honor the same contracts as the mongo repositories: every lookup
// filters by the scope's unit, and the exclusive writes run their overlap
// check and mutation under one lock.

type memUnitRepo struct {
	units map[string]*models.BusinessUnit // keyed by unit id
}

func (r *memUnitRepo) Get(_ context.Context, scope models.Scope) (*models.BusinessUnit, error) {
	u, ok := r.units[scope.UnitID]
	if !ok || u.TenantID != scope.TenantID {
		return nil, unitRepo.ErrNotFound
	}
	return u, nil
}

func (r *memUnitRepo) GetBySlug(_ context.Context, slug string) (*models.BusinessUnit, error) {
	for _, u := range r.units {
		if u.Slug == slug {
			return u, nil
		}
	}
	return nil, unitRepo.ErrNotFound
}

type memCatalogRepo struct {
	professionals map[string]*models.Professional
	services      map[string]*models.Service
}

func (r *memCatalogRepo) GetProfessional(_ context.Context, scope models.Scope, id string) (*models.Professional, error) {
	p, ok := r.professionals[id]
	if !ok || p.UnitID != scope.UnitID {
		return nil, catalogRepo.ErrNotFound
	}
	return p, nil
}

func (r *memCatalogRepo) GetService(_ context.Context, scope models.Scope, id string) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok || s.UnitID != scope.UnitID {
		return nil, catalogRepo.ErrNotFound
	}
	return s, nil
}

type memApptRepo struct {
	mu    sync.Mutex
	appts map[string]*models.Appointment
}

func newMemApptRepo() *memApptRepo {
	return &memApptRepo{appts: make(map[string]*models.Appointment)}
}

func (r *memApptRepo) GetByID(_ context.Context, scope models.Scope, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok || a.UnitID != scope.UnitID {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memApptRepo) ListForProfessional(_ context.Context, scope models.Scope, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.UnitID != scope.UnitID || a.ProfessionalID != professionalID {
			continue
		}
		if a.Status == models.StatusCancelled {
			continue
		}
		if a.Overlaps(from, to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memApptRepo) overlapsLocked(scope models.Scope, professionalID string, start, end time.Time, excludeID string) bool {
	for _, a := range r.appts {
		if a.UnitID != scope.UnitID || a.ProfessionalID != professionalID || a.ID == excludeID {
			continue
		}
		if a.Status == models.StatusCancelled {
			continue
		}
		if a.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func (r *memApptRepo) CreateExclusive(_ context.Context, scope models.Scope, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.overlapsLocked(scope, appt.ProfessionalID, appt.ScheduledAt, appt.EndsAt(), "") {
		return appointmentRepo.ErrOverlap
	}
	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

func (r *memApptRepo) RescheduleExclusive(_ context.Context, scope models.Scope, id string, newStart time.Time, maxReschedules int, updatedAt time.Time) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok || a.UnitID != scope.UnitID {
		return nil, appointmentRepo.ErrNotFound
	}
	newEnd := newStart.Add(time.Duration(a.DurationMinutes) * time.Minute)
	if r.overlapsLocked(scope, a.ProfessionalID, newStart, newEnd, id) {
		return nil, appointmentRepo.ErrOverlap
	}
	if a.RescheduleCount >= maxReschedules {
		return nil, appointmentRepo.ErrRescheduleLimit
	}
	a.ScheduledAt = newStart
	a.RescheduleCount++
	a.UpdatedAt = updatedAt
	cp := *a
	return &cp, nil
}

func (r *memApptRepo) UpdateStatus(_ context.Context, scope models.Scope, id string, status models.AppointmentStatus, reason string, updatedAt time.Time) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok || a.UnitID != scope.UnitID {
		return nil, appointmentRepo.ErrNotFound
	}
	a.Status = status
	if status == models.StatusCancelled && reason != "" {
		a.CancellationReason = reason
	}
	a.UpdatedAt = updatedAt
	cp := *a
	return &cp, nil
}

// recordingDispatcher collects dispatched events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []models.NotificationPayload
}

func (d *recordingDispatcher) Dispatch(_ context.Context, payload models.NotificationPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, payload)
	return nil
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.events)
}

// ---------- Fixtures ----------

// testNow is Monday 2025-03-10 10:00 UTC; the fixture unit is open Mondays.
var testNow = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

const (
	testTenant  = "tenant-1"
	testUnit    = "unit-1"
	testProf    = "prof-1"
	testService = "svc-1"
)

func testScope() models.Scope {
	return models.Scope{TenantID: testTenant, UnitID: testUnit}
}

func nineToSix() *models.OperatingHours {
	return &models.OperatingHours{Open: 9 * 60, Close: 18 * 60}
}

func testUnitFixture() *models.BusinessUnit {
	u := &models.BusinessUnit{
		ID:       testUnit,
		TenantID: testTenant,
		Name:     "Downtown",
		Slug:     "downtown",
		Timezone: "UTC",
		Policy: models.BookingPolicy{
			MinLeadHours:            2,
			CancellationWindowHours: 24,
			MaxReschedules:          2,
			PublicBookingEnabled:    true,
		},
	}
	// Open Monday through Friday, nine to six.
	for d := time.Monday; d <= time.Friday; d++ {
		u.Hours[int(d)] = nineToSix()
	}
	return u
}

type testEnv struct {
	svc        *DefaultBookingService
	appts      *memApptRepo
	units      *memUnitRepo
	dispatcher *recordingDispatcher
}

func newTestEnv() *testEnv {
	units := &memUnitRepo{units: map[string]*models.BusinessUnit{testUnit: testUnitFixture()}}
	catalog := &memCatalogRepo{
		professionals: map[string]*models.Professional{
			testProf: {ID: testProf, UnitID: testUnit, Name: "Alex", Active: true},
		},
		services: map[string]*models.Service{
			testService: {ID: testService, UnitID: testUnit, Name: "Haircut", DurationMinutes: 45, Price: 30, Active: true},
		},
	}
	appts := newMemApptRepo()
	dispatcher := &recordingDispatcher{}

	engine := &AvailabilityEngine{
		Units:          units,
		Catalog:        catalog,
		Appointments:   appts,
		GranularityMin: 30,
		Now:            func() time.Time { return testNow },
	}
	svc := &DefaultBookingService{
		Engine:       engine,
		Appointments: appts,
		Notifier:     dispatcher,
		Now:          func() time.Time { return testNow },
	}
	return &testEnv{svc: svc, appts: appts, units: units, dispatcher: dispatcher}
}

func validCreateInput(start time.Time, origin models.BookingOrigin) CreateInput {
	return CreateInput{
		ProfessionalID: testProf,
		ServiceID:      testService,
		CustomerName:   "Jordan Diaz",
		CustomerPhone:  "+15550100",
		StartAt:        start,
		Origin:         origin,
	}
}
