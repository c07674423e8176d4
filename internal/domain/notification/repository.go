package notification

import (
	"context"
)

// Repository defines data access for notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error

	CreateBatch(ctx context.Context, ns []*Notification) error

	GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*Notification, int64, error)

	GetUnreadCount(ctx context.Context, userID string) (int, error)

	MarkAsRead(ctx context.Context, ids []string, userID string) error

	MarkAllAsRead(ctx context.Context, userID string) error
}
