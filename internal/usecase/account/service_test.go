package account

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/config"
	domainAccount "jobboard/internal/domain/account"
	"jobboard/internal/infrastructure/database/memory"
	appErrors "jobboard/pkg/errors"
	"jobboard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestService() (*Service, *memory.AccountRepository, *memory.RefreshTokenRepository) {
	accounts := memory.NewAccountRepository()
	tokens := memory.NewRefreshTokenRepository()
	cfg := &config.JWTConfig{Secret: testSecret, ExpiryHours: 1, RefreshExpiryHours: 24}
	return NewService(accounts, tokens, cfg), accounts, tokens
}

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "Jane.Doe@Example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		AgreedToTerms:   true,
	}
}

func TestRegister_Success(t *testing.T) {
	svc, accounts, _ := newTestService()

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.Equal(t, "jane.doe@example.com", resp.Account.Email)
	assert.Equal(t, resp.Account.Email, resp.Account.Username)
	assert.Equal(t, "Jane Doe", resp.Account.FullName)
	assert.Equal(t, domainAccount.RoleUser, resp.Account.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := utils.ValidateToken(resp.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.Account.ID, claims.UserID)

	stored, err := accounts.GetByEmail(context.Background(), "jane.doe@example.com")
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(stored.PasswordHashed, "s3cret-pass"))
	assert.True(t, stored.AgreedToTerms)
}

func TestRegister_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		code   string
	}{
		{"terms not accepted", func(r *RegisterRequest) { r.AgreedToTerms = false }, appErrors.CodeValidation},
		{"password mismatch", func(r *RegisterRequest) { r.ConfirmPassword = "different" }, appErrors.CodeValidation},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, appErrors.CodeValidation},
		{"missing first name", func(r *RegisterRequest) { r.FirstName = " " }, appErrors.CodeValidation},
		{"short password", func(r *RegisterRequest) { r.Password, r.ConfirmPassword = "short", "short" }, appErrors.CodeWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService()
			req := validRegisterRequest()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)

			var appErr *appErrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	req := validRegisterRequest()
	req.Email = "JANE.DOE@example.com"
	_, err = svc.Register(context.Background(), req)

	assert.ErrorIs(t, err, appErrors.ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, accounts, _ := newTestService()
	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &LoginRequest{Email: "jane.doe@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
		assert.Equal(t, registered.Account.ID, resp.Account.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{Email: "jane.doe@example.com", Password: "nope-nope"})
		assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{Email: "who@example.com", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	})

	t.Run("inactive", func(t *testing.T) {
		acct, err := accounts.GetByID(context.Background(), registered.Account.ID)
		require.NoError(t, err)
		acct.IsActive = false
		require.NoError(t, accounts.Update(context.Background(), acct))

		_, err = svc.Login(context.Background(), &LoginRequest{Email: "jane.doe@example.com", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, appErrors.ErrUserInactive)
	})
}

func TestRefreshToken_Rotates(t *testing.T) {
	svc, _, _ := newTestService()
	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, pair.RefreshToken)

	_, err = svc.RefreshToken(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	_, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestService()
	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), registered.AccessToken)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	svc, _, _ := newTestService()
	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), registered.Account.ID, registered.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
	assert.ErrorIs(t, svc.Logout(context.Background(), registered.Account.ID, registered.RefreshToken), appErrors.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestService()
	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	id := registered.Account.ID

	err = svc.ChangePassword(context.Background(), id, &ChangePasswordRequest{
		OldPassword: "wrong-pass", NewPassword: "new-password", ConfirmPassword: "new-password",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(context.Background(), id, &ChangePasswordRequest{
		OldPassword: "s3cret-pass", NewPassword: "new-password", ConfirmPassword: "new-password",
	}))

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "jane.doe@example.com", Password: "new-password"})
	assert.NoError(t, err)
}

func TestCleanupExpiredTokens(t *testing.T) {
	svc, _, tokens := newTestService()
	ctx := context.Background()

	stale := &domainAccount.RefreshToken{Token: "stale", ExpiresAt: time.Now().Add(-48 * time.Hour)}
	fresh := &domainAccount.RefreshToken{Token: "fresh", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, tokens.Create(ctx, stale))
	require.NoError(t, tokens.Create(ctx, fresh))

	require.NoError(t, svc.CleanupExpiredTokens(ctx))

	deleted, err := tokens.DeleteExpired(ctx, expiredTokenRetention)
	require.NoError(t, err)
	assert.Zero(t, deleted)
	_, err = tokens.GetByToken(ctx, "fresh")
	assert.NoError(t, err)
}
