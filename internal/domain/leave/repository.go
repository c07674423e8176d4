package leave

import (
	"context"
	"time"
)

// Repository defines data access for leave requests.
type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)

	GetByID(ctx context.Context, id string) (Request, error)

	Update(ctx context.Context, req Request) error

	// GetApprovedCovering returns an APPROVED request spanning the given day for
	// the user, nil if none. Used by the day-status resolver.
	GetApprovedCovering(ctx context.Context, userID string, day time.Time) (*Request, error)

	// HasOverlapping reports whether a non-rejected request of the user overlaps
	// [start, end].
	HasOverlapping(ctx context.Context, userID string, start, end time.Time) (bool, error)

	ListByUser(ctx context.Context, userID string) ([]Request, error)

	ListPending(ctx context.Context) ([]Request, error)
}
