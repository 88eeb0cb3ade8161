package job

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
)

// Application is a candidate's submission to a job. AccountID is nil for guests.
type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	AccountID   *uuid.UUID
	FullName    string
	Email       string
	Phone       string
	CoverLetter string
	ResumeURL   *string
	Status      ApplicationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
