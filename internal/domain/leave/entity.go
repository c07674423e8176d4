package leave

import (
	"time"
)

// Type is the category of a leave request.
type Type string

const (
	TypeSick  Type = "SICK"
	TypeLeave Type = "LEAVE"
	// TypeWFH is a work-from-home intent spanning a date range; the actual daily
	// remote work logs reference it.
	TypeWFH Type = "WFH"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeSick, TypeLeave, TypeWFH:
		return true
	}
	return false
}

// Status is the lifecycle state of a leave request.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Request is a leave request spanning [StartDate, EndDate] inclusive. Approval
// never materialises attendance rows; the day-status resolver consumes it.
type Request struct {
	ID         string
	UserID     string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     Status
	AdminNotes *string
	DecidedBy  *string
	DecidedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined for responses
	UserName *string
}

// Covers reports whether the request spans the given day. All three values
// must be normalized to midnight of the same location.
func (r Request) Covers(day time.Time) bool {
	return !day.Before(r.StartDate) && !day.After(r.EndDate)
}
