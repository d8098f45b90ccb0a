package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agendly/database"
	"agendly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	apptColl *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &MongoAppointmentRepo{
		apptColl: database.DB().Collection("appointments"),
	}
}

// overlapFilter matches non-cancelled appointments for the professional whose
// reserved interval intersects [start, end) under half-open semantics.
// Appointment end is derived in the query from scheduled_at + duration, so the
// check always reflects the stored snapshot.
func overlapFilter(scope models.Scope, professionalID string, start, end time.Time, excludeID string) bson.M {
	filter := bson.M{
		"unit_id":         scope.UnitID,
		"professional_id": professionalID,
		"status":          bson.M{"$ne": string(models.StatusCancelled)},
		"$expr": bson.M{"$and": bson.A{
			bson.M{"$lt": bson.A{"$scheduled_at", end}},
			bson.M{"$gt": bson.A{
				bson.M{"$add": bson.A{"$scheduled_at", bson.M{"$multiply": bson.A{"$duration_minutes", 60000}}}},
				start,
			}},
		}},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, scope models.Scope, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	filter := bson.M{"id": id, "unit_id": scope.UnitID}
	if err := repo.apptColl.FindOne(ctx, filter).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) ListForProfessional(ctx context.Context, scope models.Scope, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := overlapFilter(scope, professionalID, from, to, "")
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	cursor, err := repo.apptColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments for professional %s: %w", professionalID, err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) CreateExclusive(ctx context.Context, scope models.Scope, appt *models.Appointment) error {
	client := repo.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		count, err := repo.apptColl.CountDocuments(sc,
			overlapFilter(scope, appt.ProfessionalID, appt.ScheduledAt, appt.EndsAt(), ""))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if count > 0 {
			return ErrOverlap
		}
		if _, err := repo.apptColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := runInTransaction(ctx, sess, txnFn); err != nil {
		if errors.Is(err, ErrOverlap) {
			return ErrOverlap
		}
		return fmt.Errorf("create transaction failed: %w", err)
	}
	return nil
}

func (repo *MongoAppointmentRepo) RescheduleExclusive(ctx context.Context, scope models.Scope, id string, newStart time.Time, maxReschedules int, updatedAt time.Time) (*models.Appointment, error) {
	client := repo.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var updated models.Appointment
	txnFn := func(sc mongo.SessionContext) error {
		var current models.Appointment
		filter := bson.M{"id": id, "unit_id": scope.UnitID}
		if err := repo.apptColl.FindOne(sc, filter).Decode(&current); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotFound
			}
			return fmt.Errorf("fetch appointment failed: %w", err)
		}

		newEnd := newStart.Add(time.Duration(current.DurationMinutes) * time.Minute)
		count, err := repo.apptColl.CountDocuments(sc,
			overlapFilter(scope, current.ProfessionalID, newStart, newEnd, id))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if count > 0 {
			return ErrOverlap
		}

		// The count guard rides in the filter so a concurrent reschedule
		// cannot push past the policy limit.
		guarded := bson.M{
			"id":               id,
			"unit_id":          scope.UnitID,
			"reschedule_count": bson.M{"$lt": maxReschedules},
		}
		update := bson.M{
			"$set": bson.M{"scheduled_at": newStart, "updated_at": updatedAt},
			"$inc": bson.M{"reschedule_count": 1},
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		if err := repo.apptColl.FindOneAndUpdate(sc, guarded, update, opts).Decode(&updated); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrRescheduleLimit
			}
			return fmt.Errorf("reschedule update failed: %w", err)
		}
		return nil
	}

	if err := runInTransaction(ctx, sess, txnFn); err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrOverlap), errors.Is(err, ErrRescheduleLimit):
			return nil, err
		}
		return nil, fmt.Errorf("reschedule transaction failed: %w", err)
	}
	return &updated, nil
}

func (repo *MongoAppointmentRepo) UpdateStatus(ctx context.Context, scope models.Scope, id string, status models.AppointmentStatus, reason string, updatedAt time.Time) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": string(status), "updated_at": updatedAt}
	if status == models.StatusCancelled && reason != "" {
		set["cancellation_reason"] = reason
	}

	var updated models.Appointment
	filter := bson.M{"id": id, "unit_id": scope.UnitID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := repo.apptColl.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("status update failed: %w", err)
	}
	return &updated, nil
}

func runInTransaction(ctx context.Context, sess mongo.Session, txnFn func(mongo.SessionContext) error) error {
	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}
