package holiday

import (
	"context"
	"time"
)

// Holiday is the calendar's answer for one date.
type Holiday struct {
	IsHoliday bool
	Name      *string
}

// Calendar is the holiday lookup collaborator. The engine only reads it; an
// external calendar service can replace the default Postgres-backed one at
// this boundary.
type Calendar interface {
	IsHoliday(ctx context.Context, date time.Time) (Holiday, error)
}

// Entry is a stored holiday row.
type Entry struct {
	ID        string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}

// Repository defines data access for holiday entries.
type Repository interface {
	Calendar

	Create(ctx context.Context, date time.Time, name string) (Entry, error)

	ListByYear(ctx context.Context, year int) ([]Entry, error)
}
