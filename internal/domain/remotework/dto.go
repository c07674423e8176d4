package remotework

import (
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// REMOTE WORK DTOs
// ========================================

type SubmitRequest struct {
	UserID              string   `json:"-"`
	LogDate             *string  `json:"log_date,omitempty"` // defaults to today
	EndDate             *string  `json:"end_date,omitempty"` // rejected, logs are single-day
	ActivityDescription string   `json:"activity_description"`
	EvidenceRef         *string  `json:"evidence_ref,omitempty"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	LeaveRequestID      *string  `json:"leave_request_id,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.ActivityDescription) {
		errs = append(errs, validator.ValidationError{
			Field:   "activity_description",
			Message: "activity_description is required",
		})
	}

	if r.LogDate != nil {
		if _, ok := validator.IsValidDate(*r.LogDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "log_date",
				Message: "log_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.EndDate != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrMultiDayNotSupported.Error(),
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.LeaveRequestID != nil && !validator.IsValidUUID(*r.LeaveRequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_request_id",
			Message: "leave_request_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

type ValidateRequest struct {
	LogID      string   `json:"-"`
	DecidedBy  string   `json:"-"`
	Decision   Decision `json:"decision"`
	AdminNotes *string  `json:"admin_notes,omitempty"`
}

func (r *ValidateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LogID) {
		errs = append(errs, validator.ValidationError{
			Field:   "log_id",
			Message: "log_id is required",
		})
	}

	if r.Decision != DecisionApprove && r.Decision != DecisionReject {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be APPROVE or REJECT",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LogResponse struct {
	ID                  string   `json:"id"`
	UserID              string   `json:"user_id"`
	UserName            *string  `json:"user_name,omitempty"`
	LeaveRequestID      *string  `json:"leave_request_id,omitempty"`
	LogDate             string   `json:"log_date"`
	ActivityDescription string   `json:"activity_description"`
	EvidenceRef         *string  `json:"evidence_ref,omitempty"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	Status              Status   `json:"status"`
	AdminNotes          *string  `json:"admin_notes,omitempty"`
}

// SweepError records one failed item of an expiry sweep. The sweep keeps going.
type SweepError struct {
	LogID string `json:"log_id"`
	Error string `json:"error"`
}

// SweepResult summarises one expiry sweep pass.
type SweepResult struct {
	ProcessedCount       int          `json:"processed_count"`
	AbsentRecordsCreated int          `json:"absent_records_created"`
	Errors               []SweepError `json:"errors"`
}

// PendingStats is a read-only snapshot for observability; computing it mutates
// nothing.
type PendingStats struct {
	Pending        int `json:"pending"`
	OverduePending int `json:"overdue_pending"`
	RecentRequests int `json:"recent_requests"`
}
