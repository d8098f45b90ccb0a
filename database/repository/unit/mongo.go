package unitRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agendly/database"
	"agendly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUnitRepo implements UnitRepository using MongoDB.
type MongoUnitRepo struct {
	unitColl *mongo.Collection
}

// NewMongoUnitRepo constructs a new instance of MongoUnitRepo.
func NewMongoUnitRepo() UnitRepository {
	return &MongoUnitRepo{
		unitColl: database.DB().Collection("units"),
	}
}

func (repo *MongoUnitRepo) Get(ctx context.Context, scope models.Scope) (*models.BusinessUnit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var unit models.BusinessUnit
	filter := bson.M{"id": scope.UnitID, "tenant_id": scope.TenantID}
	if err := repo.unitColl.FindOne(ctx, filter).Decode(&unit); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching unit %s: %w", scope.UnitID, err)
	}
	return &unit, nil
}

func (repo *MongoUnitRepo) GetBySlug(ctx context.Context, slug string) (*models.BusinessUnit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var unit models.BusinessUnit
	if err := repo.unitColl.FindOne(ctx, bson.M{"slug": slug}).Decode(&unit); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching unit by slug %s: %w", slug, err)
	}
	return &unit, nil
}
