package passwordreset

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"jobboard/internal/config"
	domainAccount "jobboard/internal/domain/account"
	"jobboard/internal/domain/cache"
	"jobboard/internal/domain/mail"
	"jobboard/internal/logger"
	appErrors "jobboard/pkg/errors"
	"jobboard/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const keyPrefix = "password_reset:"

const invalidTokenMessage = "Invalid or expired reset token"

// Service issues and redeems single-use password reset tokens. Tokens live in
// the shared cache under a TTL; redemption consumes them atomically.
type Service struct {
	accountRepo      domainAccount.Repository
	refreshTokenRepo domainAccount.RefreshTokenRepository
	tokens           cache.Cache
	mailer           mail.Dispatcher
	config           *config.PasswordResetConfig
	newToken         func() (string, error)
}

func NewService(
	accountRepo domainAccount.Repository,
	refreshTokenRepo domainAccount.RefreshTokenRepository,
	tokens cache.Cache,
	mailer mail.Dispatcher,
	cfg *config.PasswordResetConfig,
) *Service {
	return &Service{
		accountRepo:      accountRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		mailer:           mailer,
		config:           cfg,
		newToken:         utils.GenerateResetToken,
	}
}

func tokenKey(token string) string {
	return keyPrefix + token
}

// RequestReset never reveals whether the email belongs to an account: every
// outcome short of an account-store failure returns nil.
func (s *Service) RequestReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return appErrors.NewAppError(appErrors.CodeValidation, "Email is required", nil).
			WithDetails(map[string]string{"email": "required"})
	}

	acct, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			logger.Info("Password reset requested for unknown email",
				zap.String("event", "password_reset_requested_unknown_email"),
			)
			return nil
		}
		return fmt.Errorf("failed to retrieve account: %w", err)
	}

	if !acct.IsActive {
		logger.Info("Password reset requested for inactive account",
			zap.String("account_id", acct.ID.String()),
			zap.String("event", "password_reset_requested_inactive_account"),
		)
		return nil
	}

	token, err := s.newToken()
	if err != nil {
		logger.Error("Failed to generate password reset token",
			zap.String("account_id", acct.ID.String()),
			zap.Error(err),
		)
		return nil
	}

	if err := s.tokens.Set(ctx, tokenKey(token), acct.ID.String(), s.config.TokenTTL); err != nil {
		logger.Error("Failed to store password reset token",
			zap.String("account_id", acct.ID.String()),
			zap.String("event", "password_reset_token_store_failed"),
			zap.Error(err),
		)
		return nil
	}

	if err := s.mailer.Dispatch(s.resetMessage(acct, token)); err != nil {
		logger.Error("Failed to enqueue password reset email",
			zap.String("account_id", acct.ID.String()),
			zap.String("event", "password_reset_email_enqueue_failed"),
			zap.Error(err),
		)
		return nil
	}

	logger.Info("Password reset token issued",
		zap.String("account_id", acct.ID.String()),
		zap.Duration("ttl", s.config.TokenTTL),
		zap.String("event", "password_reset_token_issued"),
	)

	return nil
}

// RedeemReset validates the new password before touching the token so a weak
// password never burns it.
func (s *Service) RedeemReset(ctx context.Context, token, password string) error {
	token = strings.TrimSpace(token)
	if token == "" || password == "" {
		details := map[string]string{}
		if token == "" {
			details["token"] = "required"
		}
		if password == "" {
			details["password"] = "required"
		}
		return appErrors.NewAppError(appErrors.CodeValidation, "Token and password are required", nil).
			WithDetails(details)
	}

	if err := utils.ValidatePasswordLength(password, s.config.MinLength); err != nil {
		return appErrors.NewAppError(appErrors.CodeWeakPassword, err.Error(), nil)
	}

	raw, err := s.tokens.GetDel(ctx, tokenKey(token))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("Password reset attempt with invalid token",
				zap.String("event", "password_reset_failed_invalid_token"),
			)
			return appErrors.NewAppError(appErrors.CodeInvalidToken, invalidTokenMessage, nil)
		}
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	accountID, err := uuid.Parse(raw)
	if err != nil {
		return appErrors.NewAppError(appErrors.CodeInvalidToken, invalidTokenMessage, nil)
	}

	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			return appErrors.NewAppError(appErrors.CodeInvalidToken, invalidTokenMessage, nil)
		}
		return fmt.Errorf("failed to retrieve account: %w", err)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.accountRepo.UpdatePassword(ctx, acct.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if s.refreshTokenRepo != nil {
		if err := s.refreshTokenRepo.RevokeAllForAccount(ctx, acct.ID); err != nil {
			logger.Error("Failed to revoke refresh tokens after password reset",
				zap.String("account_id", acct.ID.String()),
				zap.Error(err),
			)
		}
	}

	logger.Info("Password reset successfully",
		zap.String("account_id", acct.ID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

// VerifyReset reports whether the token is currently redeemable without consuming it.
func (s *Service) VerifyReset(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return appErrors.NewAppError(appErrors.CodeInvalidToken, invalidTokenMessage, nil)
	}

	if _, err := s.tokens.Get(ctx, tokenKey(token)); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return appErrors.NewAppError(appErrors.CodeInvalidToken, invalidTokenMessage, nil)
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	return nil
}

func (s *Service) resetMessage(acct *domainAccount.Account, token string) mail.Message {
	link := s.config.ResetURL + "?token=" + url.QueryEscape(token)
	name := acct.FirstName
	if name == "" {
		name = "there"
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password. Use the link below within %s:\n\n%s\n\nIf you did not request this, you can ignore this email.\n",
		name, s.config.TokenTTL, link,
	)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>We received a request to reset your password. Use the link below within %s:</p><p><a href="%s">Reset your password</a></p><p>If you did not request this, you can ignore this email.</p>`,
		utils.SanitizeString(name), s.config.TokenTTL, link,
	)

	return mail.Message{
		To:       acct.Email,
		Subject:  "Reset your password",
		TextBody: text,
		HTMLBody: html,
	}
}
