package job

import (
	"time"

	"github.com/google/uuid"
)

// Job represents a job listing
type Job struct {
	ID              uuid.UUID
	Title           string
	Company         string
	Location        string
	Category        Category
	JobType         JobType
	ExperienceLevel ExperienceLevel
	WorkMode        WorkMode
	MinSalary       *float64
	MaxSalary       *float64
	SalaryDisplay   string
	Description     string
	Requirements    string
	Skills          []string
	CompanyLogo     *string
	CompanySize     CompanySize
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Category string

const (
	CategoryIT          Category = "it"
	CategoryMarketing   Category = "marketing"
	CategoryFinance     Category = "finance"
	CategoryDesign      Category = "design"
	CategoryHR          Category = "hr"
	CategorySales       Category = "sales"
	CategoryEngineering Category = "engineering"
	CategoryHealthcare  Category = "healthcare"
	CategoryEducation   Category = "education"
	CategoryOther       Category = "other"
)

// CategoryOption is a value/label pair for category pickers.
type CategoryOption struct {
	Value Category `json:"value"`
	Label string   `json:"label"`
}

var categoryOptions = []CategoryOption{
	{CategoryIT, "Information Technology"},
	{CategoryMarketing, "Marketing"},
	{CategoryFinance, "Finance"},
	{CategoryDesign, "Design"},
	{CategoryHR, "Human Resources"},
	{CategorySales, "Sales"},
	{CategoryEngineering, "Engineering"},
	{CategoryHealthcare, "Healthcare"},
	{CategoryEducation, "Education"},
	{CategoryOther, "Other"},
}

func Categories() []CategoryOption {
	out := make([]CategoryOption, len(categoryOptions))
	copy(out, categoryOptions)
	return out
}

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeFreelance  JobType = "freelance"
)

type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"
)

type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeOffice WorkMode = "office"
)

type CompanySize string

const (
	CompanySizeStartup CompanySize = "startup"
	CompanySizeSmall   CompanySize = "small"
	CompanySizeMedium  CompanySize = "medium"
	CompanySizeLarge   CompanySize = "large"
)

// Stats summarises the active listings.
type Stats struct {
	TotalJobs  int64 `json:"total_jobs"`
	Categories int64 `json:"categories"`
	Companies  int64 `json:"companies"`
}

// Events published when listings and applications change.
const (
	EventJobCreated           = "job.created"
	EventJobUpdated           = "job.updated"
	EventJobDeactivated       = "job.deactivated"
	EventApplicationSubmitted = "application.submitted"
)
