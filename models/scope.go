package models

import "errors"

// Scope is the tenant/unit capability every repository call requires. It is
// constructed only at the edges (auth middleware for staff, slug resolution
// for public traffic); business logic receives it and passes it through,
// making an unscoped read or write unrepresentable.
type Scope struct {
	TenantID string
	UnitID   string
}

// ErrEmptyScope is returned when a scope is constructed without both IDs.
var ErrEmptyScope = errors.New("scope requires tenant and unit ids")

// NewScope builds a scope, rejecting missing identifiers.
func NewScope(tenantID, unitID string) (Scope, error) {
	if tenantID == "" || unitID == "" {
		return Scope{}, ErrEmptyScope
	}
	return Scope{TenantID: tenantID, UnitID: unitID}, nil
}
