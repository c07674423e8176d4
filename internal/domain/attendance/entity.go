package attendance

import (
	"time"
)

// Status is the persisted state of an attendance row.
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusWFH     Status = "WFH"
	StatusLeave   Status = "LEAVE"
	StatusAbsent  Status = "ABSENT"
)

// IsValid reports whether s is one of the closed set of attendance statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusWFH, StatusLeave, StatusAbsent:
		return true
	}
	return false
}

// DayStatus is the resolver's verdict for a (user, day) pair. It is a superset
// of Status: NONE means no signal exists yet and the day is not in the past.
type DayStatus string

const (
	DayStatusPresent DayStatus = "PRESENT"
	DayStatusLate    DayStatus = "LATE"
	DayStatusWFH     DayStatus = "WFH"
	DayStatusLeave   DayStatus = "LEAVE"
	DayStatusAbsent  DayStatus = "ABSENT"
	DayStatusNone    DayStatus = "NONE"
)

// Attendance is the per-day fact row. At most one row exists per (user, day);
// the unique constraint on (user_id, date) is the source of truth for that.
type Attendance struct {
	ID                string
	UserID            string
	Date              time.Time
	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	Status            Status
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined for responses
	UserName *string
}
