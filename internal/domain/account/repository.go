package account

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines account persistence operations
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, accountID uuid.UUID) (*Account, error)
	Update(ctx context.Context, account *Account) error
	UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	Revoke(ctx context.Context, tokenID uuid.UUID) error
	RevokeAllForAccount(ctx context.Context, accountID uuid.UUID) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}

// ExperienceRepository scopes every lookup to the owning account.
type ExperienceRepository interface {
	List(ctx context.Context, accountID uuid.UUID) ([]*WorkExperience, error)
	Get(ctx context.Context, accountID, id uuid.UUID) (*WorkExperience, error)
	Create(ctx context.Context, experience *WorkExperience) error
	Update(ctx context.Context, experience *WorkExperience) error
	Delete(ctx context.Context, accountID, id uuid.UUID) error
}

type EducationRepository interface {
	List(ctx context.Context, accountID uuid.UUID) ([]*Education, error)
	Get(ctx context.Context, accountID, id uuid.UUID) (*Education, error)
	Create(ctx context.Context, education *Education) error
	Update(ctx context.Context, education *Education) error
	Delete(ctx context.Context, accountID, id uuid.UUID) error
}

type SkillRepository interface {
	List(ctx context.Context, accountID uuid.UUID) ([]*Skill, error)
	Get(ctx context.Context, accountID, id uuid.UUID) (*Skill, error)
	Create(ctx context.Context, skill *Skill) error
	Update(ctx context.Context, skill *Skill) error
	Delete(ctx context.Context, accountID, id uuid.UUID) error
}
