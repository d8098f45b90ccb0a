package unitRepo

import (
	"context"
	"errors"

	"agendly/models"
)

// ErrNotFound is returned when a unit does not exist or lies outside the
// caller's tenant.
var ErrNotFound = errors.New("business unit not found")

// UnitRepository provides scoped access to business units, their operating
// hours and their booking policy. Every read is filtered by the caller's
// scope; a unit belonging to a different tenant is indistinguishable from a
// missing one.
type UnitRepository interface {
	// Get returns the scoped unit.
	Get(ctx context.Context, scope models.Scope) (*models.BusinessUnit, error)

	// GetBySlug resolves a public slug into a unit without any prior scope.
	// This is the only unscoped entry point; its result is what public
	// handlers derive their scope from.
	GetBySlug(ctx context.Context, slug string) (*models.BusinessUnit, error)
}
