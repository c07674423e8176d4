package notification

import (
	"time"
)

// EventType identifies a status-change event emitted by the engine.
type EventType string

const (
	TypeAttendanceCheckedIn    EventType = "attendance_checked_in"
	TypeAttendanceCheckedOut   EventType = "attendance_checked_out"
	TypeAttendanceAutoCheckout EventType = "attendance_auto_checkout"
	TypeWFHSubmitted           EventType = "wfh_submitted"
	TypeWFHApproved            EventType = "wfh_approved"
	TypeWFHRejected            EventType = "wfh_rejected"
	TypeWFHExpired             EventType = "wfh_expired"
	TypeLeaveSubmitted         EventType = "leave_submitted"
	TypeLeaveApproved          EventType = "leave_approved"
	TypeLeaveRejected          EventType = "leave_rejected"
)

// Notification is one delivered (or deliverable) event.
type Notification struct {
	ID          string
	RecipientID string
	Type        EventType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
