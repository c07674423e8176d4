package office

import (
	"context"
)

// Service exposes the geofence configuration. Reads are cached with a short
// TTL; admin writes invalidate the cache.
type Service interface {
	// GetActive returns the active office location for geofence checks.
	GetActive(ctx context.Context) (Location, error)

	// Upsert creates or updates the office location and invalidates the cache.
	Upsert(ctx context.Context, req UpsertLocationRequest) (LocationResponse, error)
}
