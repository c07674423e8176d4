package attendance

import (
	"context"
	"time"
)

// Service defines business logic for the attendance ledger and the day-status
// resolver.
type Service interface {
	// CheckIn processes a physical check-in with geofence, holiday and
	// remote-work conflict validation.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's open session.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetTodayStatus resolves the canonical status for the user today.
	GetTodayStatus(ctx context.Context, userID string) (DayStatusResponse, error)

	// ResolveDayStatus resolves the canonical status for (user, day). Read-only.
	ResolveDayStatus(ctx context.Context, userID string, day time.Time) (DayStatus, error)

	// ListMyAttendance retrieves the caller's attendance history.
	ListMyAttendance(ctx context.Context, userID string, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// RunAutoCheckout force-closes open sessions once now is at or past the
	// configured cutoff. Safe to invoke repeatedly; closed rows are skipped.
	RunAutoCheckout(ctx context.Context, now time.Time) (AutoCheckoutResult, error)
}
