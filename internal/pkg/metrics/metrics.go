package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the two reconciliation batch jobs. Registered on the default
// registry and served at /metrics.
var (
	ExpirySweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_wfh_expiry_sweep_runs_total",
		Help: "Number of WFH expiry sweep passes executed.",
	})

	ExpirySweepProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_wfh_expiry_sweep_processed_total",
		Help: "Number of stale pending WFH logs resolved by the sweep.",
	})

	ExpirySweepAbsences = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_wfh_expiry_sweep_absences_total",
		Help: "Number of ABSENT attendance rows created by the sweep.",
	})

	ExpirySweepErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_wfh_expiry_sweep_errors_total",
		Help: "Number of per-item errors collected during sweeps.",
	})

	AutoCheckoutRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_auto_checkout_runs_total",
		Help: "Number of auto-checkout passes executed.",
	})

	AutoCheckoutClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_auto_checkout_closed_total",
		Help: "Number of open attendance sessions force-closed.",
	})
)
