package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/auth"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/remotework"
	"github.com/timegrid-hq/attendance-backend-go/internal/handler/http/response"
)

type RemoteWorkHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	ListMyLogs(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	GetPendingStats(w http.ResponseWriter, r *http.Request)
}

type remoteWorkHandlerImpl struct {
	remoteWorkService remotework.Service
}

func NewRemoteWorkHandler(remoteWorkService remotework.Service) RemoteWorkHandler {
	return &remoteWorkHandlerImpl{remoteWorkService: remoteWorkService}
}

// Submit implements RemoteWorkHandler.
func (h *remoteWorkHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req remotework.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	result, err := h.remoteWorkService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Remote work log submitted", result)
}

// Validate implements RemoteWorkHandler.
func (h *remoteWorkHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req remotework.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LogID = chi.URLParam(r, "logID")
	req.DecidedBy = adminID

	result, err := h.remoteWorkService.Validate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Remote work log processed", result)
}

// ListMyLogs implements RemoteWorkHandler.
func (h *remoteWorkHandlerImpl) ListMyLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.remoteWorkService.ListMyLogs(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPending implements RemoteWorkHandler.
func (h *remoteWorkHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.remoteWorkService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPendingStats implements RemoteWorkHandler.
func (h *remoteWorkHandlerImpl) GetPendingStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.remoteWorkService.GetPendingStats(r.Context(), time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
