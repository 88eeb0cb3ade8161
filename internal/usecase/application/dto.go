package application

import (
	"time"

	domainJob "jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type ApplyRequest struct {
	FullName    string  `json:"full_name" validate:"required,notblank,max=200"`
	Email       string  `json:"email" validate:"required,email,max=254"`
	Phone       string  `json:"phone" validate:"omitempty,phone"`
	CoverLetter string  `json:"cover_letter" validate:"max=10000"`
	ResumeURL   *string `json:"resume_url" validate:"omitempty,url,max=500"`
}

type ApplyResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
	JobTitle      string    `json:"job_title"`
	Company       string    `json:"company"`
}

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	JobTitle    string    `json:"job_title"`
	Company     string    `json:"company"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CoverLetter string    `json:"cover_letter"`
	ResumeURL   *string   `json:"resume_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// submittedEvent is the payload of application.submitted.
type submittedEvent struct {
	ApplicationID uuid.UUID  `json:"application_id"`
	JobID         uuid.UUID  `json:"job_id"`
	AccountID     *uuid.UUID `json:"account_id,omitempty"`
	Company       string     `json:"company"`
	JobTitle      string     `json:"job_title"`
}

func ToApplicationResponse(a *domainJob.Application, j *domainJob.Job) ApplicationResponse {
	resp := ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		FullName:    a.FullName,
		Email:       a.Email,
		Phone:       a.Phone,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
	}
	if j != nil {
		resp.JobTitle = j.Title
		resp.Company = j.Company
	}
	return resp
}
