package catalogRepo

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

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	professionalColl *mongo.Collection
	serviceColl      *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.DB()
	return &MongoCatalogRepo{
		professionalColl: db.Collection("professionals"),
		serviceColl:      db.Collection("services"),
	}
}

func (repo *MongoCatalogRepo) GetProfessional(ctx context.Context, scope models.Scope, professionalID string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var prof models.Professional
	filter := bson.M{"id": professionalID, "unit_id": scope.UnitID}
	if err := repo.professionalColl.FindOne(ctx, filter).Decode(&prof); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching professional %s: %w", professionalID, err)
	}
	return &prof, nil
}

func (repo *MongoCatalogRepo) GetService(ctx context.Context, scope models.Scope, serviceID string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	filter := bson.M{"id": serviceID, "unit_id": scope.UnitID}
	if err := repo.serviceColl.FindOne(ctx, filter).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching service %s: %w", serviceID, err)
	}
	return &svc, nil
}
