package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn      = errors.New("you have already checked in today")
	ErrConflictingRemoteWork = errors.New("a remote work log already exists for today")
	ErrHoliday               = errors.New("today is a holiday, check-in is not required")
	ErrOutOfGeofence         = errors.New("you are outside the allowed office radius")
	ErrNoOfficeConfigured    = errors.New("no office location is configured, contact your administrator")

	// Check-out errors
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
