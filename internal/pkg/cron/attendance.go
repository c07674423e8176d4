package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/remotework"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/metrics"
)

// AttendanceJobs bridges the scheduler and the two reconciliation batch
// operations. The HTTP operator endpoints invoke the same methods, so timer
// and manual triggers share one code path.
type AttendanceJobs struct {
	attendanceService attendance.Service
	remoteWorkService remotework.Service
}

func NewAttendanceJobs(attendanceService attendance.Service, remoteWorkService remotework.Service) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		remoteWorkService: remoteWorkService,
	}
}

// Register adds both jobs to the scheduler at the given tick interval. The
// jobs gate themselves on their cutoffs and are idempotent, so a short
// interval only costs cheap no-op passes.
func (j *AttendanceJobs) Register(s *Scheduler, interval time.Duration) {
	s.AddJob("auto_checkout", interval, j.RunAutoCheckout)
	s.AddJob("wfh_expiry_sweep", interval, j.RunExpirySweep)
}

// RunAutoCheckout force-closes today's open sessions past the cutoff.
func (j *AttendanceJobs) RunAutoCheckout(ctx context.Context) error {
	metrics.AutoCheckoutRuns.Inc()

	result, err := j.attendanceService.RunAutoCheckout(ctx, time.Now())
	if err != nil {
		return err
	}

	metrics.AutoCheckoutClosed.Add(float64(result.Count))
	if result.Count > 0 {
		slog.Info("auto checkout closed sessions", slog.Int("count", result.Count))
	}
	return nil
}

// RunExpirySweep resolves stale pending remote work logs.
func (j *AttendanceJobs) RunExpirySweep(ctx context.Context) error {
	metrics.ExpirySweepRuns.Inc()

	result, err := j.remoteWorkService.ProcessAllExpired(ctx, time.Now())
	if err != nil {
		return err
	}

	metrics.ExpirySweepProcessed.Add(float64(result.ProcessedCount))
	metrics.ExpirySweepAbsences.Add(float64(result.AbsentRecordsCreated))
	metrics.ExpirySweepErrors.Add(float64(len(result.Errors)))

	if result.ProcessedCount > 0 || len(result.Errors) > 0 {
		slog.Info("wfh expiry sweep finished",
			slog.Int("processed", result.ProcessedCount),
			slog.Int("absent_created", result.AbsentRecordsCreated),
			slog.Int("errors", len(result.Errors)),
		)
	}
	return nil
}
