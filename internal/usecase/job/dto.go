package job

import (
	"time"

	domainJob "jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	Title           string   `json:"title" validate:"required,notblank,max=200"`
	Company         string   `json:"company" validate:"required,notblank,max=200"`
	Location        string   `json:"location" validate:"required,notblank,max=200"`
	Category        string   `json:"category" validate:"required,oneof=it marketing finance design hr sales engineering healthcare education other"`
	JobType         string   `json:"job_type" validate:"required,oneof=full-time part-time contract internship freelance"`
	ExperienceLevel string   `json:"experience_level" validate:"required,oneof=entry mid senior lead"`
	WorkMode        string   `json:"work_mode" validate:"required,oneof=remote hybrid office"`
	MinSalary       *float64 `json:"min_salary" validate:"omitempty,gte=0"`
	MaxSalary       *float64 `json:"max_salary" validate:"omitempty,gte=0"`
	SalaryDisplay   string   `json:"salary_display" validate:"omitempty,max=100"`
	Description     string   `json:"description" validate:"required,notblank"`
	Requirements    string   `json:"requirements"`
	Skills          []string `json:"skills" validate:"omitempty,max=50,dive,notblank,max=100"`
	CompanyLogo     *string  `json:"company_logo" validate:"omitempty,url"`
	CompanySize     string   `json:"company_size" validate:"omitempty,oneof=startup small medium large"`
}

// UpdateJobRequest replaces every editable field of a listing.
type UpdateJobRequest struct {
	CreateJobRequest
	IsActive *bool `json:"is_active"`
}

type JobResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Category        string    `json:"category"`
	JobType         string    `json:"job_type"`
	ExperienceLevel string    `json:"experience_level"`
	WorkMode        string    `json:"work_mode"`
	MinSalary       *float64  `json:"min_salary"`
	MaxSalary       *float64  `json:"max_salary"`
	SalaryDisplay   string    `json:"salary_display"`
	Description     string    `json:"description"`
	Requirements    string    `json:"requirements"`
	Skills          []string  `json:"skills"`
	CompanyLogo     *string   `json:"company_logo"`
	CompanySize     string    `json:"company_size"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SearchResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

func ToJobResponse(j *domainJob.Job) *JobResponse {
	if j == nil {
		return nil
	}
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	return &JobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Company:         j.Company,
		Location:        j.Location,
		Category:        string(j.Category),
		JobType:         string(j.JobType),
		ExperienceLevel: string(j.ExperienceLevel),
		WorkMode:        string(j.WorkMode),
		MinSalary:       j.MinSalary,
		MaxSalary:       j.MaxSalary,
		SalaryDisplay:   j.SalaryDisplay,
		Description:     j.Description,
		Requirements:    j.Requirements,
		Skills:          skills,
		CompanyLogo:     j.CompanyLogo,
		CompanySize:     string(j.CompanySize),
		IsActive:        j.IsActive,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func (r *CreateJobRequest) apply(j *domainJob.Job) {
	j.Title = r.Title
	j.Company = r.Company
	j.Location = r.Location
	j.Category = domainJob.Category(r.Category)
	j.JobType = domainJob.JobType(r.JobType)
	j.ExperienceLevel = domainJob.ExperienceLevel(r.ExperienceLevel)
	j.WorkMode = domainJob.WorkMode(r.WorkMode)
	j.MinSalary = r.MinSalary
	j.MaxSalary = r.MaxSalary
	j.SalaryDisplay = r.SalaryDisplay
	j.Description = r.Description
	j.Requirements = r.Requirements
	j.Skills = r.Skills
	j.CompanyLogo = r.CompanyLogo
	j.CompanySize = domainJob.CompanySize(r.CompanySize)
}
