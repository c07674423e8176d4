package notification

import (
	"context"
)

// Sink is the narrow interface the lifecycle components emit into. It never
// blocks the emitting operation.
type Sink interface {
	Emit(ctx context.Context, event Event) error
}

// Service is the full notification surface: the engine-side sink plus the
// read/stream API used by clients.
type Service interface {
	Sink

	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*ListResponse, error)

	GetUnreadCount(ctx context.Context, userID string) (int, error)

	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error

	MarkAllAsRead(ctx context.Context, userID string) error

	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	Stop()
}
