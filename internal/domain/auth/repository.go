package auth

import (
	"context"
)

// TokenRepository persists issued refresh tokens so they can be revoked
// server-side before their JWT expiry.
type TokenRepository interface {
	// CreateRefreshToken stores an issued refresh token with its expiry.
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error

	// IsRefreshTokenRevoked reports whether the token is revoked or unknown,
	// returning the owning user ID when it is valid.
	IsRefreshTokenRevoked(ctx context.Context, token string) (userID string, revoked bool, err error)

	// RevokeRefreshToken marks the token revoked.
	RevokeRefreshToken(ctx context.Context, token string) error
}
