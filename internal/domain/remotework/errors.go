package remotework

import "errors"

// Remote work domain errors
var (
	ErrLogNotFound          = errors.New("remote work log not found")
	ErrAlreadyProcessed     = errors.New("remote work log has already been approved or rejected")
	ErrDuplicateSubmission  = errors.New("a remote work log already exists for this day")
	ErrDuplicateAttendance  = errors.New("an attendance record already exists for this day")
	ErrMultiDayNotSupported = errors.New("remote work logs cover a single day, submit one per day")
)
