package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account represents a registered user of the job board
type Account struct {
	ID                uuid.UUID
	Username          string
	Email             string
	PasswordHashed    string
	FirstName         string
	LastName          string
	Phone             *string
	Role              string
	ResumeURL         *string
	ProfilePictureURL *string
	AgreedToTerms     bool
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// RefreshToken represents a refresh token entity
type RefreshToken struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	RevokedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsActive checks if the refresh token is neither revoked nor expired
func (rt *RefreshToken) IsActive() bool {
	return !rt.Revoked && !rt.IsExpired()
}
