package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidRange         = errors.New("end date must not be before start date")
	ErrOverlappingLeave     = errors.New("an overlapping leave request already exists")
	ErrAlreadyProcessed     = errors.New("leave request has already been approved or rejected")
)
