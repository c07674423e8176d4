package user

import (
	"context"
)

// Repository defines data access for users.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)

	GetByEmail(ctx context.Context, email string) (User, error)

	GetByGoogleID(ctx context.Context, googleID string) (User, error)
}
