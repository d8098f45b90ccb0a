package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agendly/config"
	unitRepo "agendly/database/repository/unit"
	"agendly/middleware"
	"agendly/models"
	"agendly/services/booking"

	"github.com/gin-gonic/gin"
)

// fakeBookingService returns programmed results and records the arguments it
// was called with.
type fakeBookingService struct {
	slots []models.Slot
	appt  *models.Appointment
	err   error

	lastScope models.Scope
	lastActor models.ActorKind
	lastInput booking.CreateInput
}

func (f *fakeBookingService) Availability(_ context.Context, scope models.Scope, _ models.AvailabilityRequest) ([]models.Slot, error) {
	f.lastScope = scope
	return f.slots, f.err
}

func (f *fakeBookingService) Create(_ context.Context, scope models.Scope, input booking.CreateInput) (*models.Appointment, error) {
	f.lastScope = scope
	f.lastInput = input
	return f.appt, f.err
}

func (f *fakeBookingService) Reschedule(_ context.Context, scope models.Scope, _ string, _ time.Time) (*models.Appointment, error) {
	f.lastScope = scope
	return f.appt, f.err
}

func (f *fakeBookingService) Cancel(_ context.Context, scope models.Scope, _, _ string, actor models.ActorKind) (*models.Appointment, error) {
	f.lastScope = scope
	f.lastActor = actor
	return f.appt, f.err
}

func (f *fakeBookingService) AdminStatusChange(_ context.Context, scope models.Scope, _ string, _ models.AppointmentStatus) (*models.Appointment, error) {
	f.lastScope = scope
	return f.appt, f.err
}

type fakeUnitRepo struct {
	unit *models.BusinessUnit
}

func (r *fakeUnitRepo) Get(_ context.Context, scope models.Scope) (*models.BusinessUnit, error) {
	if r.unit == nil || r.unit.ID != scope.UnitID {
		return nil, unitRepo.ErrNotFound
	}
	return r.unit, nil
}

func (r *fakeUnitRepo) GetBySlug(_ context.Context, slug string) (*models.BusinessUnit, error) {
	if r.unit == nil || r.unit.Slug != slug {
		return nil, unitRepo.ErrNotFound
	}
	return r.unit, nil
}

// withScope stands in for the auth middleware in tests.
func withScope(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ScopeKey, models.Scope{TenantID: "tenant-1", UnitID: "unit-1"})
		c.Set(middleware.RoleKey, role)
		c.Next()
	}
}

func sampleAppointment() *models.Appointment {
	return &models.Appointment{
		ID:              "appt-1",
		UnitID:          "unit-1",
		ProfessionalID:  "prof-1",
		ServiceID:       "svc-1",
		CustomerName:    "Jordan Diaz",
		CustomerPhone:   "+15550100",
		ScheduledAt:     time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
		Status:          models.StatusPending,
	}
}

func perform(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestStatusForMapping(t *testing.T) {
	cases := map[string]int{
		booking.CodeNotFound:           http.StatusNotFound,
		booking.CodeValidation:         http.StatusBadRequest,
		booking.CodeSlotConflict:       http.StatusConflict,
		booking.CodeInvalidTransition:  http.StatusConflict,
		booking.CodeClosedDay:          http.StatusUnprocessableEntity,
		booking.CodeOutsideHours:       http.StatusUnprocessableEntity,
		booking.CodeLeadTime:           http.StatusUnprocessableEntity,
		booking.CodeCancellationWindow: http.StatusUnprocessableEntity,
		booking.CodeRescheduleLimit:    http.StatusUnprocessableEntity,
		"SOMETHING_ELSE":               http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := statusFor(code); got != want {
			t.Errorf("statusFor(%s) = %d, want %d", code, got, want)
		}
	}
}

func TestGetAvailability(t *testing.T) {
	fake := &fakeBookingService{slots: []models.Slot{
		{Start: time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), End: time.Date(2025, 3, 11, 9, 45, 0, 0, time.UTC), Available: true},
	}}
	BookingService = fake

	router := gin.New()
	router.GET("/api/availability", withScope(middleware.RoleStaff), GetAvailability)

	w := perform(router, http.MethodGet, "/api/availability?professional_id=prof-1&service_id=svc-1&date=2025-03-11", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if fake.lastScope.UnitID != "unit-1" {
		t.Errorf("handler passed scope %+v", fake.lastScope)
	}

	var resp struct {
		Slots []models.Slot `json:"slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(resp.Slots) != 1 {
		t.Errorf("got %d slots, want 1", len(resp.Slots))
	}
}

func TestGetAvailabilityMissingParams(t *testing.T) {
	BookingService = &fakeBookingService{}

	router := gin.New()
	router.GET("/api/availability", withScope(middleware.RoleStaff), GetAvailability)

	w := perform(router, http.MethodGet, "/api/availability?professional_id=prof-1", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateAppointmentConflictResponse(t *testing.T) {
	BookingService = &fakeBookingService{err: booking.NewSlotConflict()}

	router := gin.New()
	router.POST("/api/appointments", withScope(middleware.RoleStaff), CreateAppointment)

	w := perform(router, http.MethodPost, "/api/appointments", gin.H{
		"professional_id": "prof-1",
		"service_id":      "svc-1",
		"customer_name":   "Jordan Diaz",
		"customer_phone":  "+15550100",
		"start_at":        "2025-03-11T10:00:00Z",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code      string `json:"code"`
		Retryable bool   `json:"retryable"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Code != booking.CodeSlotConflict || !resp.Retryable {
		t.Errorf("body = %+v, want a retryable slot conflict", resp)
	}
}

func TestCreateAppointmentIsInternal(t *testing.T) {
	fake := &fakeBookingService{appt: sampleAppointment()}
	BookingService = fake

	router := gin.New()
	router.POST("/api/appointments", withScope(middleware.RoleStaff), CreateAppointment)

	w := perform(router, http.MethodPost, "/api/appointments", gin.H{
		"professional_id": "prof-1",
		"service_id":      "svc-1",
		"customer_name":   "Jordan Diaz",
		"customer_phone":  "+15550100",
		"start_at":        "2025-03-11T10:00:00Z",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if fake.lastInput.Origin != models.OriginInternal {
		t.Errorf("origin = %s, want %s", fake.lastInput.Origin, models.OriginInternal)
	}
}

func TestCancelActorFollowsRole(t *testing.T) {
	appt := sampleAppointment()
	appt.Status = models.StatusCancelled

	for role, wantActor := range map[string]models.ActorKind{
		middleware.RoleStaff: models.ActorCustomer,
		middleware.RoleAdmin: models.ActorAdmin,
	} {
		fake := &fakeBookingService{appt: appt}
		BookingService = fake

		router := gin.New()
		router.POST("/api/appointments/:id/cancel", withScope(role), CancelAppointment)

		w := perform(router, http.MethodPost, "/api/appointments/appt-1/cancel", gin.H{"reason": "test"})
		if w.Code != http.StatusOK {
			t.Fatalf("role %s: status = %d, body %s", role, w.Code, w.Body.String())
		}
		if fake.lastActor != wantActor {
			t.Errorf("role %s mapped to actor %s, want %s", role, fake.lastActor, wantActor)
		}
	}
}

func TestPublicCreateReturnsTokenNotID(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	appt := sampleAppointment()
	appt.Status = models.StatusConfirmed
	fake := &fakeBookingService{appt: appt}
	BookingService = fake
	UnitRepo = &fakeUnitRepo{unit: &models.BusinessUnit{
		ID:       "unit-1",
		TenantID: "tenant-1",
		Slug:     "downtown",
		Timezone: "UTC",
	}}

	router := gin.New()
	router.POST("/public/:slug/appointments", PublicCreateAppointment)

	w := perform(router, http.MethodPost, "/public/downtown/appointments", gin.H{
		"professional_id": "prof-1",
		"service_id":      "svc-1",
		"customer_name":   "Jordan Diaz",
		"customer_phone":  "+15550100",
		"start_at":        "2025-03-11T10:00:00Z",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if fake.lastInput.Origin != models.OriginPublic {
		t.Errorf("origin = %s, want %s", fake.lastInput.Origin, models.OriginPublic)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if _, ok := resp["token"]; !ok {
		t.Error("public create must return a token")
	}
	if _, ok := resp["id"]; ok {
		t.Error("public create must not expose the internal appointment id")
	}
}

func TestPublicUnknownSlug(t *testing.T) {
	BookingService = &fakeBookingService{}
	UnitRepo = &fakeUnitRepo{}

	router := gin.New()
	router.GET("/public/:slug/availability", PublicAvailability)

	w := perform(router, http.MethodGet, "/public/nowhere/availability?professional_id=p&service_id=s&date=2025-03-11", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
