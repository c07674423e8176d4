package remotework

import (
	"context"
	"time"
)

// Service defines the remote work lifecycle: submission, admin validation and
// the expiry sweep over stale pending logs.
type Service interface {
	// Submit creates a PENDING log. No geofence check applies, remote by
	// definition.
	Submit(ctx context.Context, req SubmitRequest) (LogResponse, error)

	// Validate approves or rejects a PENDING log. Approve creates the WFH
	// attendance row in the same transaction; reject of a past day backfills an
	// ABSENT row when no attendance exists.
	Validate(ctx context.Context, req ValidateRequest) (LogResponse, error)

	// ListMyLogs retrieves the caller's logs.
	ListMyLogs(ctx context.Context, userID string) ([]LogResponse, error)

	// ListPending retrieves all pending logs for admin review.
	ListPending(ctx context.Context) ([]LogResponse, error)

	// ProcessAllExpired rejects every PENDING log dated before start-of-today,
	// creating ABSENT attendance rows where the day is otherwise unrecorded.
	// Re-entrant: items already resolved are skipped, one bad item never aborts
	// the sweep.
	ProcessAllExpired(ctx context.Context, now time.Time) (SweepResult, error)

	// GetPendingStats reports pending/overdue/recent counts. Read-only.
	GetPendingStats(ctx context.Context, now time.Time) (PendingStats, error)
}
