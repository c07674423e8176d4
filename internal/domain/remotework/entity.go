package remotework

import (
	"time"
)

// Status is the lifecycle state of a remote work log.
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

// Log is a work-from-home claim for a single day. A PENDING or APPROVED log
// for today blocks physical check-in for the same user.
type Log struct {
	ID                  string
	UserID              string
	LeaveRequestID      *string
	LogDate             time.Time
	ActivityDescription string
	EvidenceRef         *string
	Latitude            *float64
	Longitude           *float64
	Status              Status
	AdminNotes          *string
	DecidedBy           *string
	DecidedAt           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joined for responses
	UserName *string
}
