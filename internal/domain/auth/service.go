package auth

import (
	"context"
)

// Service defines the authentication collaborator surface the engine depends
// on: it exchanges credentials for JWTs carrying user id and role claims.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	LoginWithGoogle(ctx context.Context, code string) (TokenResponse, error)

	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	Logout(ctx context.Context, refreshToken string) error
}
