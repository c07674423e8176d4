package office

import (
	"context"
)

// Repository defines data access for office locations.
type Repository interface {
	// GetActive returns the active office location. ErrLocationNotFound when no
	// active location is configured.
	GetActive(ctx context.Context) (Location, error)

	GetByID(ctx context.Context, id string) (Location, error)

	// Upsert creates or replaces the location identified by name.
	Upsert(ctx context.Context, loc Location) (Location, error)
}
