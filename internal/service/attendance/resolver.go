package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/remotework"
)

// ResolveDayStatus implements attendance.Service. It reconciles the three
// independently-approved signals for one (user, day) into a single verdict.
// Precedence is total: explicit attendance row > approved leave > approved
// remote work log > ABSENT for a past day, NONE otherwise. Read-only; its
// answer must match whatever the lifecycle components already committed.
func (s *ServiceImpl) ResolveDayStatus(ctx context.Context, userID string, day time.Time) (attendance.DayStatus, error) {
	d := s.startOfDay(day)

	att, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, d)
	if err != nil {
		return "", fmt.Errorf("failed to get attendance for day: %w", err)
	}
	if att != nil {
		switch att.Status {
		case attendance.StatusPresent:
			return attendance.DayStatusPresent, nil
		case attendance.StatusLate:
			return attendance.DayStatusLate, nil
		case attendance.StatusWFH:
			return attendance.DayStatusWFH, nil
		case attendance.StatusLeave:
			return attendance.DayStatusLeave, nil
		case attendance.StatusAbsent:
			return attendance.DayStatusAbsent, nil
		default:
			return "", fmt.Errorf("attendance row %s has unknown status %q", att.ID, att.Status)
		}
	}

	approvedLeave, err := s.leaveRepo.GetApprovedCovering(ctx, userID, d)
	if err != nil {
		return "", fmt.Errorf("failed to get approved leave for day: %w", err)
	}
	if approvedLeave != nil {
		return attendance.DayStatusLeave, nil
	}

	log, err := s.remoteWorkRepo.GetActiveByUserAndDate(ctx, userID, d)
	if err != nil {
		return "", fmt.Errorf("failed to get remote work log for day: %w", err)
	}
	if log != nil && log.Status == remotework.StatusApproved {
		return attendance.DayStatusWFH, nil
	}

	if d.Before(s.startOfDay(s.now())) {
		return attendance.DayStatusAbsent, nil
	}
	return attendance.DayStatusNone, nil
}
