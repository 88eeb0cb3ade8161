package account

import (
	"time"

	domainAccount "jobboard/internal/domain/account"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	FirstName       string  `json:"first_name" validate:"required,notblank,max=100"`
	LastName        string  `json:"last_name" validate:"required,notblank,max=100"`
	Email           string  `json:"email" validate:"required,email,max=254"`
	Phone           *string `json:"phone" validate:"omitempty,phone"`
	Password        string  `json:"password" validate:"required,max=128"`
	ConfirmPassword string  `json:"confirm_password" validate:"required,eqfield=Password"`
	AgreedToTerms   bool    `json:"agreed_to_terms"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type AccountResponse struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	FullName          string    `json:"full_name"`
	Phone             *string   `json:"phone"`
	Role              string    `json:"role"`
	ResumeURL         *string   `json:"resume_url"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

type AuthResponse struct {
	Account      *AccountResponse `json:"account"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresAt    int64            `json:"expires_at"`
}

func ToAccountResponse(a *domainAccount.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:                a.ID,
		Username:          a.Username,
		Email:             a.Email,
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		FullName:          a.FullName(),
		Phone:             a.Phone,
		Role:              a.Role,
		ResumeURL:         a.ResumeURL,
		ProfilePictureURL: a.ProfilePictureURL,
		IsActive:          a.IsActive,
		CreatedAt:         a.CreatedAt,
	}
}
