package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobboard/internal/config"
	domainAccount "jobboard/internal/domain/account"
	"jobboard/internal/logger"
	appErrors "jobboard/pkg/errors"
	"jobboard/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements account use cases
type Service struct {
	accountRepo      domainAccount.Repository
	refreshTokenRepo domainAccount.RefreshTokenRepository
	config           *config.JWTConfig
}

func NewService(
	accountRepo domainAccount.Repository,
	refreshTokenRepo domainAccount.RefreshTokenRepository,
	cfg *config.JWTConfig,
) *Service {
	return &Service{
		accountRepo:      accountRepo,
		refreshTokenRepo: refreshTokenRepo,
		config:           cfg,
	}
}

func validationError(err error) error {
	return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err).
		WithDetails(utils.ValidationDetails(err))
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email, err := utils.ValidateAndSanitizeEmail(req.Email)
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid email address", err).
			WithDetails(map[string]string{"email": "email"})
	}
	req.Email = email

	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}
	if !req.AgreedToTerms {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, appErrors.ErrTermsNotAccepted.Error(), appErrors.ErrTermsNotAccepted).
			WithDetails(map[string]string{"agreed_to_terms": "required"})
	}
	if err := utils.ValidatePasswordLength(req.Password, utils.MinAccountPasswordLength); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeWeakPassword, err.Error(), nil)
	}

	existing, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domainAccount.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, appErrors.ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var phone *string
	if req.Phone != nil {
		p := utils.SanitizePhone(*req.Phone)
		phone = &p
	}

	acct := &domainAccount.Account{
		Username:       req.Email,
		Email:          req.Email,
		PasswordHashed: hashedPassword,
		FirstName:      utils.SanitizeString(req.FirstName),
		LastName:       utils.SanitizeString(req.LastName),
		Phone:          phone,
		Role:           domainAccount.RoleUser,
		AgreedToTerms:  true,
		IsActive:       true,
	}

	if err := s.accountRepo.Create(ctx, acct); err != nil {
		if errors.Is(err, domainAccount.ErrAccountAlreadyExists) {
			return nil, appErrors.ErrUserAlreadyExists
		}
		return nil, err
	}

	resp, err := s.issueTokens(ctx, acct)
	if err != nil {
		return nil, err
	}

	logger.Info("Account registered successfully",
		zap.String("account_id", acct.ID.String()),
		zap.String("event", "account_registered"),
	)

	return resp, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	acct, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("event", "login_failed_unknown_email"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(acct.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("account_id", acct.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	if !acct.IsActive {
		logger.Warn("Login attempt for inactive account",
			zap.String("account_id", acct.ID.String()),
			zap.String("event", "login_failed_inactive_account"),
		)
		return nil, appErrors.ErrUserInactive
	}

	resp, err := s.issueTokens(ctx, acct)
	if err != nil {
		return nil, err
	}

	logger.Info("Account logged in successfully",
		zap.String("account_id", acct.ID.String()),
		zap.String("role", acct.Role),
		zap.String("event", "login_success"),
	)

	return resp, nil
}

func (s *Service) GetAccount(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return ToAccountResponse(acct), nil
}

func (s *Service) ChangePassword(ctx context.Context, accountID uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return validationError(err)
	}
	if err := utils.ValidatePasswordLength(req.NewPassword, utils.MinAccountPasswordLength); err != nil {
		return appErrors.NewAppError(appErrors.CodeWeakPassword, err.Error(), nil)
	}

	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(acct.PasswordHashed, req.OldPassword) {
		logger.Warn("Password change attempt with invalid old password",
			zap.String("account_id", acct.ID.String()),
			zap.String("event", "password_change_failed_invalid_old_password"),
		)
		return appErrors.ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.accountRepo.UpdatePassword(ctx, accountID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Password changed successfully",
		zap.String("account_id", acct.ID.String()),
		zap.String("event", "password_change_success"),
	)

	return nil
}

// RefreshToken rotates the refresh token: the presented one is revoked and a
// new pair is issued.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken, s.config.Secret)
	if err != nil || claims.TokenType != utils.RefreshTokenType {
		logger.Warn("Token refresh attempt with invalid token",
			zap.String("event", "token_refresh_failed_invalid_token"),
		)
		return nil, appErrors.ErrInvalidToken
	}

	dbToken, err := s.refreshTokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		logger.Warn("Token refresh attempt with unknown or revoked token",
			zap.String("account_id", claims.UserID.String()),
			zap.String("event", "token_refresh_failed_token_not_found"),
		)
		return nil, appErrors.ErrInvalidToken
	}

	if dbToken.AccountID != claims.UserID {
		logger.Warn("Token refresh attempt with mismatched account ID",
			zap.String("token_account_id", dbToken.AccountID.String()),
			zap.String("claim_account_id", claims.UserID.String()),
			zap.String("event", "token_refresh_failed_account_mismatch"),
		)
		return nil, appErrors.ErrInvalidToken
	}

	acct, err := s.accountRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, err
	}
	if !acct.IsActive {
		return nil, appErrors.ErrUserInactive
	}

	if err := s.refreshTokenRepo.Revoke(ctx, dbToken.ID); err != nil {
		// Another request rotated the same token first.
		if errors.Is(err, domainAccount.ErrTokenInvalid) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	resp, err := s.issueTokens(ctx, acct)
	if err != nil {
		return nil, err
	}

	logger.Debug("Token refreshed successfully",
		zap.String("account_id", acct.ID.String()),
		zap.String("old_token_id", dbToken.ID.String()),
		zap.String("event", "token_refresh_success"),
	)

	return &utils.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
	}, nil
}

func (s *Service) Logout(ctx context.Context, accountID uuid.UUID, refreshToken string) error {
	dbToken, err := s.refreshTokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return appErrors.ErrInvalidToken
	}

	if dbToken.AccountID != accountID {
		return appErrors.ErrInvalidToken
	}

	if err := s.refreshTokenRepo.Revoke(ctx, dbToken.ID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	logger.Info("Refresh token revoked",
		zap.String("account_id", accountID.String()),
		zap.String("token_id", dbToken.ID.String()),
		zap.String("event", "token_revoked"),
	)

	return nil
}

func (s *Service) LogoutAll(ctx context.Context, accountID uuid.UUID) error {
	if err := s.refreshTokenRepo.RevokeAllForAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to revoke all tokens for account: %w", err)
	}

	logger.Info("All refresh tokens revoked for account",
		zap.String("account_id", accountID.String()),
		zap.String("event", "all_tokens_revoked"),
	)

	return nil
}

func (s *Service) issueTokens(ctx context.Context, acct *domainAccount.Account) (*AuthResponse, error) {
	tokenPair, err := utils.GenerateTokenPair(
		acct.ID,
		acct.Email,
		acct.Role,
		s.config.Secret,
		s.config.ExpiryHours,
		s.config.RefreshExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := time.Now()
	refreshToken := &domainAccount.RefreshToken{
		AccountID: acct.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: now.Add(time.Duration(s.config.RefreshExpiryHours) * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResponse{
		Account:      ToAccountResponse(acct),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}
