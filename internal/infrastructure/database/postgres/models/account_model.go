package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel represents the database model for Account
type AccountModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Email             string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_email"`
	PasswordHashed    string    `gorm:"type:varchar(255);not null"`
	FirstName         string    `gorm:"type:varchar(150);not null"`
	LastName          string    `gorm:"type:varchar(150);not null"`
	Phone             *string   `gorm:"type:varchar(20)"`
	Role              string    `gorm:"type:varchar(50);not null;default:'user'"`
	ResumeURL         *string   `gorm:"type:text"`
	ProfilePictureURL *string   `gorm:"type:text"`
	AgreedToTerms     bool      `gorm:"default:false;not null"`
	IsActive          bool      `gorm:"default:true;not null"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

func (AccountModel) TableName() string {
	return "accounts"
}

// RefreshTokenModel represents the database model for RefreshToken
type RefreshTokenModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Token     string     `gorm:"type:varchar(500);not null;unique;index"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	Revoked   bool       `gorm:"default:false;index"`
	RevokedAt *time.Time `gorm:"type:timestamp"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

type WorkExperienceModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Company     string     `gorm:"type:varchar(200);not null"`
	Location    string     `gorm:"type:varchar(200)"`
	StartDate   time.Time  `gorm:"type:date;not null"`
	EndDate     *time.Time `gorm:"type:date"`
	IsCurrent   bool       `gorm:"default:false;not null"`
	Description string     `gorm:"type:text"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (WorkExperienceModel) TableName() string {
	return "work_experiences"
}

type EducationModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Degree       string    `gorm:"type:varchar(200);not null"`
	Institution  string    `gorm:"type:varchar(200);not null"`
	FieldOfStudy string    `gorm:"type:varchar(200)"`
	StartYear    int       `gorm:"not null"`
	EndYear      *int
	Grade        string    `gorm:"type:varchar(50)"`
	Description  string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (EducationModel) TableName() string {
	return "educations"
}

type SkillModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_skills_account_name"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_skills_account_name"`
	Level     int       `gorm:"not null;default:3"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (SkillModel) TableName() string {
	return "skills"
}
