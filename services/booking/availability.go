package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appointmentRepo "agendly/database/repository/appointment"
	catalogRepo "agendly/database/repository/catalog"
	unitRepo "agendly/database/repository/unit"
	"agendly/models"
	"agendly/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityEngine computes the bookable slot grid for a professional,
// service and date. The pipeline is resolve calendar, generate candidates,
// filter past starts, annotate conflicts; each stage is a pure function and
// the engine only wires them to storage.
type AvailabilityEngine struct {
	Units          unitRepo.UnitRepository
	Catalog        catalogRepo.CatalogRepository
	Appointments   appointmentRepo.AppointmentRepository
	Cache          *redis.Client
	GranularityMin int
	CacheTTL       time.Duration
	Now            func() time.Time
}

func (e *AvailabilityEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// DailySlots returns the slot grid for the request, serving short-lived cached
// snapshots for plain queries. Requests carrying an exclusion (reschedule
// rechecks) always hit storage.
func (e *AvailabilityEngine) DailySlots(ctx context.Context, scope models.Scope, req models.AvailabilityRequest) ([]models.Slot, error) {
	if req.ExcludeAppointmentID != "" || e.Cache == nil || e.CacheTTL <= 0 {
		return e.FreshDailySlots(ctx, scope, req)
	}

	logger := utils.GetLogger()
	key := availabilityCacheKey(scope, req)

	if data, err := e.Cache.Get(ctx, key).Result(); err == nil {
		var slots []models.Slot
		if err := json.Unmarshal([]byte(data), &slots); err == nil {
			return slots, nil
		}
		logger.Warn("discarding undecodable availability snapshot", zap.String("key", key))
	}

	slots, err := e.FreshDailySlots(ctx, scope, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(slots); err == nil {
		if err := e.Cache.Set(ctx, key, data, e.CacheTTL).Err(); err != nil {
			logger.Warn("failed to cache availability snapshot", zap.String("key", key), zap.Error(err))
		}
	}
	return slots, nil
}

// FreshDailySlots always recomputes from current storage state. Create and
// reschedule re-validate through this path; a previously returned slot list
// is never trusted.
func (e *AvailabilityEngine) FreshDailySlots(ctx context.Context, scope models.Scope, req models.AvailabilityRequest) ([]models.Slot, error) {
	unit, err := e.Units.Get(ctx, scope)
	if err != nil {
		return nil, mapUnitErr(err)
	}

	prof, err := e.Catalog.GetProfessional(ctx, scope, req.ProfessionalID)
	if err != nil {
		return nil, mapCatalogErr(err, "professional")
	}
	if !prof.Active {
		return nil, NewNotFound("professional")
	}

	svc, err := e.Catalog.GetService(ctx, scope, req.ServiceID)
	if err != nil {
		return nil, mapCatalogErr(err, "service")
	}
	if !svc.Active {
		return nil, NewNotFound("service")
	}

	loc := unit.Location()
	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		return nil, NewValidationError("date must be formatted as YYYY-MM-DD")
	}

	window, open := ResolveDay(unit, date)
	if !open {
		return nil, NewClosedDay(req.Date)
	}

	candidates := GenerateCandidates(window, svc.DurationMinutes, e.GranularityMin)
	candidates = FilterPast(candidates, window, e.now())

	existing, err := e.Appointments.ListForProfessional(ctx, scope, req.ProfessionalID, window.Open, window.Close)
	if err != nil {
		return nil, fmt.Errorf("listing existing appointments: %w", err)
	}

	return AnnotateConflicts(candidates, existing, req.ExcludeAppointmentID), nil
}

// InvalidateSnapshots drops cached availability for the professional on the
// given dates after a booking write.
func (e *AvailabilityEngine) InvalidateSnapshots(ctx context.Context, scope models.Scope, professionalID string, dates ...string) {
	if e.Cache == nil {
		return
	}
	logger := utils.GetLogger()
	for _, date := range dates {
		pattern := fmt.Sprintf("%s%s:%s:%s:*", utils.AvailabilityCachePrefix, scope.UnitID, professionalID, date)
		iter := e.Cache.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			if err := e.Cache.Del(ctx, iter.Val()).Err(); err != nil {
				logger.Warn("failed to invalidate availability snapshot",
					zap.String("key", iter.Val()), zap.Error(err))
			}
		}
		if err := iter.Err(); err != nil {
			logger.Warn("availability snapshot scan failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}

func availabilityCacheKey(scope models.Scope, req models.AvailabilityRequest) string {
	return fmt.Sprintf("%s%s:%s:%s:%s",
		utils.AvailabilityCachePrefix, scope.UnitID, req.ProfessionalID, req.Date, req.ServiceID)
}

func mapUnitErr(err error) error {
	if errors.Is(err, unitRepo.ErrNotFound) {
		return NewNotFound("unit")
	}
	return err
}

func mapCatalogErr(err error, what string) error {
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return NewNotFound(what)
	}
	return err
}
