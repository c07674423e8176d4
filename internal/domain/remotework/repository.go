package remotework

import (
	"context"
	"time"
)

// Repository defines data access for remote work logs.
type Repository interface {
	Create(ctx context.Context, log Log) (Log, error)

	GetByID(ctx context.Context, id string) (Log, error)

	// GetActiveByUserAndDate returns a PENDING or APPROVED log for (user, day),
	// nil if none. Used to block physical check-in.
	GetActiveByUserAndDate(ctx context.Context, userID string, date time.Time) (*Log, error)

	// Update persists status, admin notes and decision stamps.
	Update(ctx context.Context, log Log) error

	// ListByUser retrieves a user's logs, newest first.
	ListByUser(ctx context.Context, userID string) ([]Log, error)

	// ListPending retrieves all PENDING logs, oldest first.
	ListPending(ctx context.Context) ([]Log, error)

	// ListExpiredPending retrieves PENDING logs with log_date before the given
	// start-of-day. Each one is an expiry sweep candidate.
	ListExpiredPending(ctx context.Context, startOfDay time.Time) ([]Log, error)

	// CountStats returns pending, overdue-pending and recent (since the given
	// time) counts.
	CountStats(ctx context.Context, startOfDay time.Time, recentSince time.Time) (PendingStats, error)
}
