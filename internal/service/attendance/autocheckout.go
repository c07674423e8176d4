package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/notification"
)

// RunAutoCheckout implements attendance.Service. It force-closes today's open
// sessions once now is at or past the configured cutoff. Before the cutoff it
// returns an empty result rather than an error, so at-least-once triggers are
// harmless. Each row is committed independently; a failed row is left open
// for the next run.
func (s *ServiceImpl) RunAutoCheckout(ctx context.Context, now time.Time) (attendance.AutoCheckoutResult, error) {
	local := now.In(s.loc)
	cutoff := s.autoCheckoutCutoff.On(local)
	if local.Before(cutoff) {
		return attendance.AutoCheckoutResult{AffectedIDs: []string{}}, nil
	}

	today := s.startOfDay(now)
	sessions, err := s.attendanceRepo.ListOpenSessions(ctx, today)
	if err != nil {
		return attendance.AutoCheckoutResult{}, fmt.Errorf("failed to list open sessions: %w", err)
	}

	result := attendance.AutoCheckoutResult{AffectedIDs: []string{}}
	for _, session := range sessions {
		if session.CheckOutTime != nil {
			continue
		}

		checkOut := cutoff
		session.CheckOutTime = &checkOut
		session.Notes = appendNote(session.Notes, "auto check-out")

		if err := s.attendanceRepo.Update(ctx, session); err != nil {
			slog.Error("Failed to auto-close attendance",
				"attendance_id", session.ID,
				"user_id", session.UserID,
				"error", err)
			continue
		}

		_ = s.sink.Emit(ctx, notification.Event{
			RecipientID: session.UserID,
			Type:        notification.TypeAttendanceAutoCheckout,
			Title:       "Attendance auto-closed",
			Message:     fmt.Sprintf("Your attendance for %s was automatically checked out at %s", session.Date.Format("2006-01-02"), cutoff.Format("15:04")),
			Data: map[string]interface{}{
				"attendance_id": session.ID,
				"date":          session.Date.Format("2006-01-02"),
			},
		})

		result.Count++
		result.AffectedIDs = append(result.AffectedIDs, session.ID)
	}

	return result, nil
}
