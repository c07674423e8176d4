package http

import (
	"net/http"
	"time"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/remotework"
	"github.com/timegrid-hq/attendance-backend-go/internal/handler/http/response"
)

// JobsHandler exposes the two reconciliation batch operations as
// operator-invoked endpoints. Both are idempotent, so an external scheduler
// hitting them alongside the internal timer is harmless.
type JobsHandler interface {
	RunAutoCheckout(w http.ResponseWriter, r *http.Request)
	RunExpirySweep(w http.ResponseWriter, r *http.Request)
}

type jobsHandlerImpl struct {
	attendanceService attendance.Service
	remoteWorkService remotework.Service
}

func NewJobsHandler(attendanceService attendance.Service, remoteWorkService remotework.Service) JobsHandler {
	return &jobsHandlerImpl{
		attendanceService: attendanceService,
		remoteWorkService: remoteWorkService,
	}
}

// RunAutoCheckout implements JobsHandler. Invoking it before the cutoff
// returns an empty result, not an error.
func (h *jobsHandlerImpl) RunAutoCheckout(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.RunAutoCheckout(r.Context(), time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RunExpirySweep implements JobsHandler.
func (h *jobsHandlerImpl) RunExpirySweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.remoteWorkService.ProcessAllExpired(r.Context(), time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
