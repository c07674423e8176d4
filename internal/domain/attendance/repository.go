package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance rows. Create must enforce the
// one-row-per-(user, day) invariant at the storage layer: a second insert for
// the same user and day returns ErrAlreadyCheckedIn, never a duplicate row.
type Repository interface {
	// Create inserts a new attendance row, guarded by the unique (user_id, date)
	// constraint. Concurrent inserts for the same user and day have one winner.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves an attendance row by ID.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate retrieves the row for (user, day), nil if none exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// Update persists mutated fields of an existing row.
	Update(ctx context.Context, att Attendance) error

	// ListByUser retrieves a user's rows with filters and pagination.
	ListByUser(ctx context.Context, userID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// ListOpenSessions retrieves rows for the given day with a check-in but no
	// check-out. Used by the auto-checkout job.
	ListOpenSessions(ctx context.Context, date time.Time) ([]Attendance, error)
}
