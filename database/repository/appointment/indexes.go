// FILE: database/repository/appointment/indexes.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the appointments collection.
func (repo *MongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on appointment ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index backing the overlap query path
		{
			Keys: bson.D{
				{Key: "unit_id", Value: 1},
				{Key: "professional_id", Value: 1},
				{Key: "scheduled_at", Value: 1},
			},
			Options: options.Index().SetName("unit_professional_start_idx"),
		},
		// Status queries within a unit
		{
			Keys:    bson.D{{Key: "unit_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("unit_status_idx"),
		},
	}

	_, err := repo.apptColl.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
