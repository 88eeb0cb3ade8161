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

// AccountRepository implements account.Repository
type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) account.Repository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt

	dbModel := toAccountModel(a)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isUniqueViolation(err, "") {
			return account.ErrAccountAlreadyExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	a.ID = dbModel.ID
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	var dbModel models.AccountModel
	err := r.db.DB.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return toAccountEntity(&dbModel), nil
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*account.Account, error) {
	var dbModel models.AccountModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", accountID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return toAccountEntity(&dbModel), nil
}

func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	a.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"first_name":          a.FirstName,
			"last_name":           a.LastName,
			"phone":               a.Phone,
			"resume_url":          a.ResumeURL,
			"profile_picture_url": a.ProfilePictureURL,
			"is_active":           a.IsActive,
			"updated_at":          a.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"password_hashed": passwordHash,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

func toAccountModel(a *account.Account) *models.AccountModel {
	return &models.AccountModel{
		ID:                a.ID,
		Username:          a.Username,
		Email:             a.Email,
		PasswordHashed:    a.PasswordHashed,
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		Phone:             a.Phone,
		Role:              a.Role,
		ResumeURL:         a.ResumeURL,
		ProfilePictureURL: a.ProfilePictureURL,
		AgreedToTerms:     a.AgreedToTerms,
		IsActive:          a.IsActive,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func toAccountEntity(m *models.AccountModel) *account.Account {
	return &account.Account{
		ID:                m.ID,
		Username:          m.Username,
		Email:             m.Email,
		PasswordHashed:    m.PasswordHashed,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Phone:             m.Phone,
		Role:              m.Role,
		ResumeURL:         m.ResumeURL,
		ProfilePictureURL: m.ProfilePictureURL,
		AgreedToTerms:     m.AgreedToTerms,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
