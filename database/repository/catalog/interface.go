package catalogRepo

import (
	"context"
	"errors"

	"agendly/models"
)

// ErrNotFound is returned when a professional or service does not exist
// inside the caller's unit.
var ErrNotFound = errors.New("catalog entity not found")

// CatalogRepository provides scoped access to a unit's professionals and
// services. Lookups never cross the unit in the scope.
type CatalogRepository interface {
	GetProfessional(ctx context.Context, scope models.Scope, professionalID string) (*models.Professional, error)
	GetService(ctx context.Context, scope models.Scope, serviceID string) (*models.Service, error)
}
