package models

import (
	"time"

	"github.com/google/uuid"
)

// JobModel represents the database model for Job
type JobModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title           string    `gorm:"type:varchar(200);not null"`
	Company         string    `gorm:"type:varchar(200);not null;index"`
	Location        string    `gorm:"type:varchar(200);not null"`
	Category        string    `gorm:"type:varchar(20);not null;index"`
	JobType         string    `gorm:"type:varchar(20);not null"`
	ExperienceLevel string    `gorm:"type:varchar(20);not null"`
	WorkMode        string    `gorm:"type:varchar(20);not null"`
	MinSalary       *float64  `gorm:"type:numeric(12,2)"`
	MaxSalary       *float64  `gorm:"type:numeric(12,2)"`
	SalaryDisplay   string    `gorm:"type:varchar(100)"`
	Description     string    `gorm:"type:text;not null"`
	Requirements    string    `gorm:"type:text"`
	Skills          []string  `gorm:"type:jsonb;serializer:json"`
	CompanyLogo     *string   `gorm:"type:text"`
	CompanySize     string    `gorm:"type:varchar(20)"`
	IsActive        bool      `gorm:"default:true;not null;index"`
	CreatedAt       time.Time `gorm:"not null;index"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (JobModel) TableName() string {
	return "jobs"
}

type ApplicationModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	JobID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_email"`
	AccountID   *uuid.UUID `gorm:"type:uuid;index"`
	FullName    string     `gorm:"type:varchar(200);not null"`
	Email       string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_applications_job_email"`
	Phone       string     `gorm:"type:varchar(20)"`
	CoverLetter string     `gorm:"type:text"`
	ResumeURL   *string    `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`

	Job *JobModel `gorm:"foreignKey:JobID"`
}

func (ApplicationModel) TableName() string {
	return "job_applications"
}
