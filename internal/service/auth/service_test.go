package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/auth"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/user"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/oauth"
)

const (
	testSecret   = "test-secret-key-for-jwt"
	testEmail    = "employee@example.com"
	testPassword = "password123"
)

// fakeUserRepo is an in-memory user.Repository.
type fakeUserRepo struct {
	users map[string]user.User // by ID
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByGoogleID(ctx context.Context, googleID string) (user.User, error) {
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// fakeTokenRepo is an in-memory auth.TokenRepository. Unknown tokens count as
// revoked, just like the real store.
type fakeTokenRepo struct {
	tokens  map[string]string // token -> userID
	revoked map[string]bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		tokens:  make(map[string]string),
		revoked: make(map[string]bool),
	}
}

func (f *fakeTokenRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return "", true, nil
	}
	return userID, f.revoked[token], nil
}

func (f *fakeTokenRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

type fakeGoogleService struct {
	info    oauth.GoogleInformation
	infoErr error
}

func (f *fakeGoogleService) GenerateState(userAgent string) string { return "state" }

func (f *fakeGoogleService) RedirectURL(state string) string { return "https://example.com" }

func (f *fakeGoogleService) VerifyToken(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "bad-code" {
		return nil, errors.New("exchange failed")
	}
	return &oauth2.Token{AccessToken: "google-token"}, nil
}

func (f *fakeGoogleService) VerifyUser(ctx context.Context, token *oauth2.Token) (oauth.GoogleInformation, error) {
	if f.infoErr != nil {
		return oauth.GoogleInformation{}, f.infoErr
	}
	return f.info, nil
}

type nopTx struct{}

func (nopTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type authFixture struct {
	svc       auth.Service
	userRepo  *fakeUserRepo
	tokenRepo *fakeTokenRepo
	google    *fakeGoogleService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)
	googleID := "google-123"

	f := &authFixture{
		userRepo: &fakeUserRepo{users: map[string]user.User{
			"user-1": {
				ID:           "user-1",
				Email:        testEmail,
				FullName:     "Test Employee",
				Role:         user.RoleEmployee,
				IsApproved:   true,
				PasswordHash: &hashStr,
				GoogleID:     &googleID,
			},
		}},
		tokenRepo: newFakeTokenRepo(),
		google:    &fakeGoogleService{},
	}

	jwtService := jwt.NewJWTService(testSecret, "1h", "24h")
	f.svc = NewAuthService(jwtService, f.userRepo, f.tokenRepo, f.google, nopTx{})
	return f
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: testEmail, Password: testPassword})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Greater(t, resp.ExpiresAt, int64(0))
	assert.Greater(t, resp.RefreshExpiresAt, resp.ExpiresAt)

	// The refresh token must be persisted for later revocation checks.
	userID, revoked, err := f.tokenRepo.IsRefreshTokenRevoked(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Equal(t, "user-1", userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.svc.Login(ctx, auth.LoginRequest{Email: testEmail, Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_GoogleOnlyAccountHasNoPassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	u := f.userRepo.users["user-1"]
	u.PasswordHash = nil
	f.userRepo.users["user-1"] = u

	_, err := f.svc.Login(ctx, auth.LoginRequest{Email: testEmail, Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnapprovedAccount(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	u := f.userRepo.users["user-1"]
	u.IsApproved = false
	f.userRepo.users["user-1"] = u

	_, err := f.svc.Login(ctx, auth.LoginRequest{Email: testEmail, Password: testPassword})
	assert.ErrorIs(t, err, user.ErrNotApproved)
}

func TestLoginWithGoogle_KnownGoogleID(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	f.google.info = oauth.GoogleInformation{GoogleID: "google-123", Email: testEmail, VerifiedEmail: true}

	resp, err := f.svc.LoginWithGoogle(ctx, "good-code")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWithGoogle_LinksByVerifiedEmail(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	f.google.info = oauth.GoogleInformation{GoogleID: "google-999", Email: testEmail, VerifiedEmail: true}

	_, err := f.svc.LoginWithGoogle(ctx, "good-code")
	assert.NoError(t, err)
}

func TestLoginWithGoogle_UnverifiedEmailNotLinked(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	f.google.info = oauth.GoogleInformation{GoogleID: "google-999", Email: testEmail, VerifiedEmail: false}

	_, err := f.svc.LoginWithGoogle(ctx, "good-code")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestLoginWithGoogle_BadCode(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.svc.LoginWithGoogle(ctx, "bad-code")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	refreshed, err := f.svc.Refresh(ctx, login.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.RefreshToken, refreshed.RefreshToken)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	_, err = f.svc.Refresh(ctx, login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefresh_RevokedTokenRejected(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, login.RefreshToken))

	_, err = f.svc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefresh_GarbageTokenRejected(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.svc.Refresh(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
