package response

import (
	"errors"
	"net/http"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/auth"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/leave"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/office"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/remotework"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/user"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses with stable error codes.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrNotApproved):
		Forbidden(w, "Account is awaiting administrator approval")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		ErrorWithCode(w, http.StatusConflict, "ALREADY_CHECKED_IN", "Attendance already recorded for today")
	case errors.Is(err, attendance.ErrConflictingRemoteWork):
		ErrorWithCode(w, http.StatusConflict, "CONFLICTING_REMOTE_WORK", "A remote work log already covers today")
	case errors.Is(err, attendance.ErrHoliday):
		ErrorWithCode(w, http.StatusConflict, "HOLIDAY", "Check-in is not available on a holiday")
	case errors.Is(err, attendance.ErrOutOfGeofence):
		ErrorWithCode(w, http.StatusUnprocessableEntity, "OUT_OF_GEOFENCE", "Location is outside the office geofence")
	case errors.Is(err, attendance.ErrNoOfficeConfigured):
		ErrorWithCode(w, http.StatusConflict, "NO_OFFICE_CONFIGURED", "No active office location is configured")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		ErrorWithCode(w, http.StatusConflict, "NOT_CHECKED_IN", "No open attendance session for today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		ErrorWithCode(w, http.StatusConflict, "ALREADY_CHECKED_OUT", "Attendance already checked out")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Remote work domain errors
	case errors.Is(err, remotework.ErrLogNotFound):
		NotFound(w, "Remote work log not found")
	case errors.Is(err, remotework.ErrAlreadyProcessed):
		ErrorWithCode(w, http.StatusConflict, "ALREADY_PROCESSED", "Remote work log already processed")
	case errors.Is(err, remotework.ErrDuplicateSubmission):
		ErrorWithCode(w, http.StatusConflict, "DUPLICATE_SUBMISSION", "A remote work log already exists for this day")
	case errors.Is(err, remotework.ErrDuplicateAttendance):
		ErrorWithCode(w, http.StatusConflict, "DUPLICATE_ATTENDANCE", "An attendance record already exists for this day")
	case errors.Is(err, remotework.ErrMultiDayNotSupported):
		ErrorWithCode(w, http.StatusUnprocessableEntity, "MULTI_DAY_NOT_SUPPORTED", "Remote work logs cover a single day; submit one per day")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidRange):
		ErrorWithCode(w, http.StatusUnprocessableEntity, "INVALID_RANGE", "End date must not be before start date")
	case errors.Is(err, leave.ErrOverlappingLeave):
		ErrorWithCode(w, http.StatusConflict, "OVERLAPPING_LEAVE", "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		ErrorWithCode(w, http.StatusConflict, "ALREADY_PROCESSED", "Leave request already processed")

	// Office domain errors
	case errors.Is(err, office.ErrLocationNotFound):
		NotFound(w, "Office location not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
