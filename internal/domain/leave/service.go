package leave

import (
	"context"
)

// Service defines the leave request lifecycle. Approved leave is consumed only
// by the day-status resolver; it never writes attendance rows, because a leave
// can span many days while attendance is a per-day fact table.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)

	Decide(ctx context.Context, req DecideRequest) (RequestResponse, error)

	ListMyLeave(ctx context.Context, userID string) ([]RequestResponse, error)

	ListPending(ctx context.Context) ([]RequestResponse, error)
}
