package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobboard/internal/domain/account"
	"jobboard/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenRepository implements account.RefreshTokenRepository
type RefreshTokenRepository struct {
	db *DB
}

func NewRefreshTokenRepository(db *DB) account.RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *account.RefreshToken) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	token.UpdatedAt = token.CreatedAt
	token.Revoked = false

	dbModel := toRefreshTokenModel(token)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	token.ID = dbModel.ID
	return nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*account.RefreshToken, error) {
	var dbModel models.RefreshTokenModel
	err := r.db.DB.WithContext(ctx).
		Where("token = ? AND revoked = false AND expires_at > NOW()", token).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrTokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return toRefreshTokenEntity(&dbModel), nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	now := time.Now()
	result := r.db.DB.WithContext(ctx).
		Model(&models.RefreshTokenModel{}).
		Where("id = ? AND revoked = false", tokenID).
		Updates(map[string]interface{}{
			"revoked":    true,
			"revoked_at": now,
			"updated_at": now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to revoke token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrTokenInvalid
	}

	return nil
}

func (r *RefreshTokenRepository) RevokeAllForAccount(ctx context.Context, accountID uuid.UUID) error {
	now := time.Now()
	result := r.db.DB.WithContext(ctx).
		Model(&models.RefreshTokenModel{}).
		Where("account_id = ? AND revoked = false", accountID).
		Updates(map[string]interface{}{
			"revoked":    true,
			"revoked_at": now,
			"updated_at": now,
		})

	return result.Error
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoffTime := time.Now().Add(-olderThan)
	result := r.db.DB.WithContext(ctx).
		Where("expires_at < ? OR (revoked = true AND revoked_at < ?)", cutoffTime, cutoffTime).
		Delete(&models.RefreshTokenModel{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func toRefreshTokenModel(t *account.RefreshToken) *models.RefreshTokenModel {
	var revokedAt *time.Time
	if !t.RevokedAt.IsZero() {
		revokedAt = &t.RevokedAt
	}

	return &models.RefreshTokenModel{
		ID:        t.ID,
		AccountID: t.AccountID,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		Revoked:   t.Revoked,
		RevokedAt: revokedAt,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toRefreshTokenEntity(m *models.RefreshTokenModel) *account.RefreshToken {
	var revokedAt time.Time
	if m.RevokedAt != nil {
		revokedAt = *m.RevokedAt
	}

	return &account.RefreshToken{
		ID:        m.ID,
		AccountID: m.AccountID,
		Token:     m.Token,
		ExpiresAt: m.ExpiresAt,
		Revoked:   m.Revoked,
		RevokedAt: revokedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
