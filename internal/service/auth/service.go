package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/auth"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/user"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/database"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/oauth"
)

type AuthServiceImpl struct {
	jwt.Service
	userRepo  user.Repository
	tokenRepo auth.TokenRepository
	google    oauth.GoogleService
	tx        database.TxRunner
}

func NewAuthService(
	jwtService jwt.Service,
	userRepo user.Repository,
	tokenRepo auth.TokenRepository,
	google oauth.GoogleService,
	tx database.TxRunner,
) auth.Service {
	return &AuthServiceImpl{
		Service:   jwtService,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		google:    google,
		tx:        tx,
	}
}

// Login implements auth.Service.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData)
}

// LoginWithGoogle implements auth.Service. Account creation is out of scope;
// an unknown Google identity is rejected.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	token, err := a.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	info, err := a.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.userRepo.GetByGoogleID(ctx, info.GoogleID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) && !errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, fmt.Errorf("failed to get user by google id: %w", err)
		}
		// First Google login on an existing account links by verified email.
		if !info.VerifiedEmail {
			return auth.TokenResponse{}, auth.ErrUserNotFound
		}
		userData, err = a.userRepo.GetByEmail(ctx, info.Email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, user.ErrUserNotFound) {
				return auth.TokenResponse{}, auth.ErrUserNotFound
			}
			return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
		}
	}

	return a.issueTokens(ctx, userData)
}

// Refresh implements auth.Service.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	token, err := jwtauth.VerifyToken(a.JWTAuth(), refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if tokenType, ok := claims["type"].(string); !ok || tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userID, revoked, err := a.tokenRepo.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrUserNotFound
	}

	accessToken, expiresAt, err := a.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		TokenType:    "Bearer",
	}, nil
}

// Logout implements auth.Service.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := a.tokenRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	a.RevokeToken(refreshToken)
	return nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	if !userData.IsApproved {
		return auth.TokenResponse{}, user.ErrNotApproved
	}

	var response auth.TokenResponse

	err := a.tx.RunInTx(ctx, func(txCtx context.Context) error {
		accessToken, accessExpiresAt, err := a.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}

		refreshToken, refreshExpiresAt, err := a.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.tokenRepo.CreateRefreshToken(txCtx, userData.ID, refreshToken, refreshExpiresAt); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}

		response = auth.TokenResponse{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			RefreshExpiresAt: refreshExpiresAt,
			ExpiresAt:        accessExpiresAt,
			TokenType:        "Bearer",
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return response, nil
}
