package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/leave"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/notification"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/validator"
)

type ServiceImpl struct {
	leaveRepo leave.Repository
	sink      notification.Sink

	loc *time.Location

	now func() time.Time
}

func NewLeaveService(leaveRepo leave.Repository, sink notification.Sink, loc *time.Location) leave.Service {
	return &ServiceImpl{
		leaveRepo: leaveRepo,
		sink:      sink,
		loc:       loc,
		now:       time.Now,
	}
}

// Submit implements leave.Service.
func (s *ServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.loc)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, s.loc)

	if end.Before(start) {
		return leave.RequestResponse{}, leave.ErrInvalidRange
	}

	overlaps, err := s.leaveRepo.HasOverlapping(ctx, req.UserID, start, end)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	if overlaps {
		return leave.RequestResponse{}, leave.ErrOverlappingLeave
	}

	created, err := s.leaveRepo.Create(ctx, leave.Request{
		UserID:    req.UserID,
		Type:      req.Type,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	})
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	_ = s.sink.Emit(ctx, notification.Event{
		RecipientID: req.UserID,
		Type:        notification.TypeLeaveSubmitted,
		Title:       "Leave submitted",
		Message: fmt.Sprintf("%s request for %s to %s is pending review",
			req.Type, start.Format("2006-01-02"), end.Format("2006-01-02")),
		Data: map[string]interface{}{
			"leave_id":   created.ID,
			"type":       string(req.Type),
			"start_date": start.Format("2006-01-02"),
			"end_date":   end.Format("2006-01-02"),
		},
	})

	return s.toResponse(created), nil
}

// Decide implements leave.Service. It only transitions the request status;
// approved leave reaches attendance exclusively through the day-status
// resolver.
func (s *ServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	request, err := s.leaveRepo.GetByID(ctx, req.LeaveID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.RequestResponse{}, leave.ErrAlreadyProcessed
	}

	now := s.now()
	request.AdminNotes = req.AdminNotes
	request.DecidedBy = &req.DecidedBy
	request.DecidedAt = &now

	eventType := notification.TypeLeaveApproved
	title := "Leave approved"
	verdict := "approved"
	if req.Decision == leave.DecisionApprove {
		request.Status = leave.StatusApproved
	} else {
		request.Status = leave.StatusRejected
		eventType = notification.TypeLeaveRejected
		title = "Leave rejected"
		verdict = "rejected"
	}

	if err := s.leaveRepo.Update(ctx, request); err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	_ = s.sink.Emit(ctx, notification.Event{
		RecipientID: request.UserID,
		Type:        eventType,
		Title:       title,
		Message: fmt.Sprintf("%s request for %s to %s was %s",
			request.Type,
			request.StartDate.In(s.loc).Format("2006-01-02"),
			request.EndDate.In(s.loc).Format("2006-01-02"),
			verdict),
		Data: map[string]interface{}{
			"leave_id": request.ID,
			"status":   string(request.Status),
		},
	})

	return s.toResponse(request), nil
}

// ListMyLeave implements leave.Service.
func (s *ServiceImpl) ListMyLeave(ctx context.Context, userID string) ([]leave.RequestResponse, error) {
	requests, err := s.leaveRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return s.toResponses(requests), nil
}

// ListPending implements leave.Service.
func (s *ServiceImpl) ListPending(ctx context.Context) ([]leave.RequestResponse, error) {
	requests, err := s.leaveRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return s.toResponses(requests), nil
}

func (s *ServiceImpl) toResponse(req leave.Request) leave.RequestResponse {
	resp := leave.RequestResponse{
		ID:         req.ID,
		UserID:     req.UserID,
		UserName:   req.UserName,
		Type:       req.Type,
		StartDate:  req.StartDate.In(s.loc).Format("2006-01-02"),
		EndDate:    req.EndDate.In(s.loc).Format("2006-01-02"),
		Reason:     req.Reason,
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
		DecidedBy:  req.DecidedBy,
	}
	if req.DecidedAt != nil {
		decidedAt := req.DecidedAt.In(s.loc).Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

func (s *ServiceImpl) toResponses(requests []leave.Request) []leave.RequestResponse {
	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, s.toResponse(req))
	}
	return responses
}
