package remotework

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/notification"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/remotework"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/database"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/validator"
)

// expiredAdminNotes is stamped on logs rejected by the sweep, never by a human.
const expiredAdminNotes = "Automatically rejected: request expired without review"

// recentWindow bounds the "recent requests" count in pending stats.
const recentWindow = 7 * 24 * time.Hour

type ServiceImpl struct {
	logRepo        remotework.Repository
	attendanceRepo attendance.Repository
	sink           notification.Sink
	tx             database.TxRunner

	loc *time.Location

	now func() time.Time
}

func NewRemoteWorkService(
	logRepo remotework.Repository,
	attendanceRepo attendance.Repository,
	sink notification.Sink,
	tx database.TxRunner,
	loc *time.Location,
) remotework.Service {
	return &ServiceImpl{
		logRepo:        logRepo,
		attendanceRepo: attendanceRepo,
		sink:           sink,
		tx:             tx,
		loc:            loc,
		now:            time.Now,
	}
}

// startOfDay normalizes t to midnight of its calendar day in the office
// timezone.
func (s *ServiceImpl) startOfDay(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
}

// Submit implements remotework.Service.
func (s *ServiceImpl) Submit(ctx context.Context, req remotework.SubmitRequest) (remotework.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return remotework.LogResponse{}, err
	}
	if req.EndDate != nil {
		return remotework.LogResponse{}, remotework.ErrMultiDayNotSupported
	}

	logDate := s.startOfDay(s.now())
	if req.LogDate != nil {
		parsed, ok := validator.IsValidDate(*req.LogDate)
		if !ok {
			return remotework.LogResponse{}, validator.ValidationErrors{{
				Field:   "log_date",
				Message: "log_date must be in YYYY-MM-DD format",
			}}
		}
		logDate = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, s.loc)
	}

	active, err := s.logRepo.GetActiveByUserAndDate(ctx, req.UserID, logDate)
	if err != nil {
		return remotework.LogResponse{}, fmt.Errorf("failed to check existing remote work logs: %w", err)
	}
	if active != nil {
		return remotework.LogResponse{}, remotework.ErrDuplicateSubmission
	}

	// A day already recorded in attendance cannot be claimed as remote work;
	// approving it would be bound to fail, so refuse up front.
	existing, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, logDate)
	if err != nil {
		return remotework.LogResponse{}, fmt.Errorf("failed to check attendance: %w", err)
	}
	if existing != nil {
		return remotework.LogResponse{}, remotework.ErrDuplicateAttendance
	}

	created, err := s.logRepo.Create(ctx, remotework.Log{
		UserID:              req.UserID,
		LeaveRequestID:      req.LeaveRequestID,
		LogDate:             logDate,
		ActivityDescription: req.ActivityDescription,
		EvidenceRef:         req.EvidenceRef,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		Status:              remotework.StatusPending,
	})
	if err != nil {
		return remotework.LogResponse{}, fmt.Errorf("failed to create remote work log: %w", err)
	}

	_ = s.sink.Emit(ctx, notification.Event{
		RecipientID: req.UserID,
		Type:        notification.TypeWFHSubmitted,
		Title:       "Remote work submitted",
		Message:     fmt.Sprintf("Remote work log for %s is pending review", logDate.Format("2006-01-02")),
		Data: map[string]interface{}{
			"log_id":   created.ID,
			"log_date": logDate.Format("2006-01-02"),
		},
	})

	return s.toResponse(created), nil
}

// Validate implements remotework.Service. The status transition and the
// attendance mutation commit together or not at all.
func (s *ServiceImpl) Validate(ctx context.Context, req remotework.ValidateRequest) (remotework.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return remotework.LogResponse{}, err
	}

	log, err := s.logRepo.GetByID(ctx, req.LogID)
	if err != nil {
		return remotework.LogResponse{}, err
	}
	if log.Status != remotework.StatusPending {
		return remotework.LogResponse{}, remotework.ErrAlreadyProcessed
	}

	now := s.now()
	day := s.startOfDay(log.LogDate)

	existing, err := s.attendanceRepo.GetByUserAndDate(ctx, log.UserID, day)
	if err != nil {
		return remotework.LogResponse{}, fmt.Errorf("failed to check attendance: %w", err)
	}

	switch req.Decision {
	case remotework.DecisionApprove:
		if existing != nil {
			return remotework.LogResponse{}, remotework.ErrDuplicateAttendance
		}
		if err := s.approve(ctx, &log, req, now, day); err != nil {
			return remotework.LogResponse{}, err
		}
	case remotework.DecisionReject:
		if err := s.reject(ctx, &log, req, now, day, existing); err != nil {
			return remotework.LogResponse{}, err
		}
	default:
		return remotework.LogResponse{}, validator.ValidationErrors{{
			Field:   "decision",
			Message: "decision must be APPROVE or REJECT",
		}}
	}

	return s.toResponse(log), nil
}

func (s *ServiceImpl) approve(ctx context.Context, log *remotework.Log, req remotework.ValidateRequest, now, day time.Time) error {
	log.Status = remotework.StatusApproved
	log.AdminNotes = req.AdminNotes
	log.DecidedBy = &req.DecidedBy
	log.DecidedAt = &now

	checkIn := day
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.attendanceRepo.Create(txCtx, attendance.Attendance{
			UserID:           log.UserID,
			Date:             day,
			CheckInTime:      &checkIn,
			CheckInLatitude:  log.Latitude,
			CheckInLongitude: log.Longitude,
			Status:           attendance.StatusWFH,
			Notes:            &log.ActivityDescription,
		}); err != nil {
			if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
				return remotework.ErrDuplicateAttendance
			}
			return fmt.Errorf("failed to create attendance record: %w", err)
		}
		if err := s.logRepo.Update(txCtx, *log); err != nil {
			return fmt.Errorf("failed to update remote work log: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.sink.Emit(ctx, notification.Event{
		RecipientID: log.UserID,
		Type:        notification.TypeWFHApproved,
		Title:       "Remote work approved",
		Message:     fmt.Sprintf("Remote work log for %s was approved", day.Format("2006-01-02")),
		Data: map[string]interface{}{
			"log_id":   log.ID,
			"log_date": day.Format("2006-01-02"),
		},
	})

	return nil
}

func (s *ServiceImpl) reject(ctx context.Context, log *remotework.Log, req remotework.ValidateRequest, now, day time.Time, existing *attendance.Attendance) error {
	log.Status = remotework.StatusRejected
	log.AdminNotes = req.AdminNotes
	log.DecidedBy = &req.DecidedBy
	log.DecidedAt = &now

	// Rejecting a past-dated claim means the day holds no recorded work at
	// all; backfill an ABSENT row unless something else already covers it.
	backfill := day.Before(s.startOfDay(now)) && existing == nil

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if backfill {
			notes := "remote work request rejected"
			if _, err := s.attendanceRepo.Create(txCtx, attendance.Attendance{
				UserID: log.UserID,
				Date:   day,
				Status: attendance.StatusAbsent,
				Notes:  &notes,
			}); err != nil && !errors.Is(err, attendance.ErrAlreadyCheckedIn) {
				return fmt.Errorf("failed to create absent record: %w", err)
			}
		}
		if err := s.logRepo.Update(txCtx, *log); err != nil {
			return fmt.Errorf("failed to update remote work log: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.sink.Emit(ctx, notification.Event{
		RecipientID: log.UserID,
		Type:        notification.TypeWFHRejected,
		Title:       "Remote work rejected",
		Message:     fmt.Sprintf("Remote work log for %s was rejected", day.Format("2006-01-02")),
		Data: map[string]interface{}{
			"log_id":   log.ID,
			"log_date": day.Format("2006-01-02"),
		},
	})

	return nil
}

// ListMyLogs implements remotework.Service.
func (s *ServiceImpl) ListMyLogs(ctx context.Context, userID string) ([]remotework.LogResponse, error) {
	logs, err := s.logRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote work logs: %w", err)
	}
	return s.toResponses(logs), nil
}

// ListPending implements remotework.Service.
func (s *ServiceImpl) ListPending(ctx context.Context) ([]remotework.LogResponse, error) {
	logs, err := s.logRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending remote work logs: %w", err)
	}
	return s.toResponses(logs), nil
}

// ProcessAllExpired implements remotework.Service. Each log is resolved in
// its own transaction, so a crash mid-sweep leaves the remainder for the next
// run and a failed item never blocks the rest.
func (s *ServiceImpl) ProcessAllExpired(ctx context.Context, now time.Time) (remotework.SweepResult, error) {
	startOfToday := s.startOfDay(now)

	expired, err := s.logRepo.ListExpiredPending(ctx, startOfToday)
	if err != nil {
		return remotework.SweepResult{}, fmt.Errorf("failed to list expired remote work logs: %w", err)
	}

	result := remotework.SweepResult{Errors: []remotework.SweepError{}}
	for _, log := range expired {
		createdAbsent, err := s.expireOne(ctx, log, now)
		if err != nil {
			slog.Error("expiry sweep item failed",
				slog.String("log_id", log.ID),
				slog.String("user_id", log.UserID),
				slog.String("error", err.Error()),
			)
			result.Errors = append(result.Errors, remotework.SweepError{
				LogID: log.ID,
				Error: err.Error(),
			})
			continue
		}
		result.ProcessedCount++
		if createdAbsent {
			result.AbsentRecordsCreated++
		}
	}

	return result, nil
}

// expireOne rejects a single stale log, backfilling an ABSENT row when the
// day is otherwise unrecorded. Returns whether a row was created.
func (s *ServiceImpl) expireOne(ctx context.Context, log remotework.Log, now time.Time) (bool, error) {
	day := s.startOfDay(log.LogDate)

	existing, err := s.attendanceRepo.GetByUserAndDate(ctx, log.UserID, day)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance: %w", err)
	}

	adminNotes := expiredAdminNotes
	log.Status = remotework.StatusRejected
	log.AdminNotes = &adminNotes
	log.DecidedAt = &now

	createdAbsent := false
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if existing == nil {
			notes := "WFH request expired"
			_, err := s.attendanceRepo.Create(txCtx, attendance.Attendance{
				UserID: log.UserID,
				Date:   day,
				Status: attendance.StatusAbsent,
				Notes:  &notes,
			})
			switch {
			case err == nil:
				createdAbsent = true
			case errors.Is(err, attendance.ErrAlreadyCheckedIn):
				// Lost a race with another resolver for the same day. The day
				// is recorded either way.
			default:
				return fmt.Errorf("failed to create absent record: %w", err)
			}
		}
		if err := s.logRepo.Update(txCtx, log); err != nil {
			return fmt.Errorf("failed to update remote work log: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	_ = s.sink.Emit(ctx, notification.Event{
		RecipientID: log.UserID,
		Type:        notification.TypeWFHExpired,
		Title:       "Remote work expired",
		Message:     fmt.Sprintf("Remote work log for %s expired without review", day.Format("2006-01-02")),
		Data: map[string]interface{}{
			"log_id":   log.ID,
			"log_date": day.Format("2006-01-02"),
		},
	})

	return createdAbsent, nil
}

// GetPendingStats implements remotework.Service.
func (s *ServiceImpl) GetPendingStats(ctx context.Context, now time.Time) (remotework.PendingStats, error) {
	stats, err := s.logRepo.CountStats(ctx, s.startOfDay(now), now.Add(-recentWindow))
	if err != nil {
		return remotework.PendingStats{}, fmt.Errorf("failed to count remote work stats: %w", err)
	}
	return stats, nil
}

func (s *ServiceImpl) toResponse(log remotework.Log) remotework.LogResponse {
	return remotework.LogResponse{
		ID:                  log.ID,
		UserID:              log.UserID,
		UserName:            log.UserName,
		LeaveRequestID:      log.LeaveRequestID,
		LogDate:             log.LogDate.In(s.loc).Format("2006-01-02"),
		ActivityDescription: log.ActivityDescription,
		EvidenceRef:         log.EvidenceRef,
		Latitude:            log.Latitude,
		Longitude:           log.Longitude,
		Status:              log.Status,
		AdminNotes:          log.AdminNotes,
	}
}

func (s *ServiceImpl) toResponses(logs []remotework.Log) []remotework.LogResponse {
	responses := make([]remotework.LogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, s.toResponse(log))
	}
	return responses
}
