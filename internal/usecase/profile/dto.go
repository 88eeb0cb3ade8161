package profile

import (
	"time"

	domainAccount "jobboard/internal/domain/account"
	accountUsecase "jobboard/internal/usecase/account"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// UpdateProfileRequest changes only the fields that are present.
type UpdateProfileRequest struct {
	FirstName         *string `json:"first_name" validate:"omitempty,notblank,max=100"`
	LastName          *string `json:"last_name" validate:"omitempty,notblank,max=100"`
	Phone             *string `json:"phone" validate:"omitempty,phone"`
	ResumeURL         *string `json:"resume_url" validate:"omitempty,url,max=500"`
	ProfilePictureURL *string `json:"profile_picture_url" validate:"omitempty,url,max=500"`
}

type ExperienceRequest struct {
	Title       string  `json:"title" validate:"required,notblank,max=200"`
	Company     string  `json:"company" validate:"required,notblank,max=200"`
	Location    string  `json:"location" validate:"max=200"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsCurrent   bool    `json:"is_current"`
	Description string  `json:"description" validate:"max=5000"`
}

type EducationRequest struct {
	Degree       string `json:"degree" validate:"required,notblank,max=200"`
	Institution  string `json:"institution" validate:"required,notblank,max=200"`
	FieldOfStudy string `json:"field_of_study" validate:"max=200"`
	StartYear    int    `json:"start_year" validate:"required,gte=1900,lte=2100"`
	EndYear      *int   `json:"end_year" validate:"omitempty,gte=1900,lte=2100"`
	Grade        string `json:"grade" validate:"max=50"`
	Description  string `json:"description" validate:"max=5000"`
}

type SkillRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=100"`
	Level *int   `json:"level" validate:"omitempty,gte=1,lte=5"`
}

type ExperienceResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	StartDate   string    `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	IsCurrent   bool      `json:"is_current"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type EducationResponse struct {
	ID           uuid.UUID `json:"id"`
	Degree       string    `json:"degree"`
	Institution  string    `json:"institution"`
	FieldOfStudy string    `json:"field_of_study"`
	StartYear    int       `json:"start_year"`
	EndYear      *int      `json:"end_year"`
	Grade        string    `json:"grade"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

type SkillResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Level           int       `json:"level"`
	LevelDisplay    string    `json:"level_display"`
	LevelPercentage int       `json:"level_percentage"`
}

type Metrics struct {
	ExperienceCount int `json:"experience_count"`
	EducationCount  int `json:"education_count"`
	SkillCount      int `json:"skill_count"`
}

type ProfileResponse struct {
	Account         *accountUsecase.AccountResponse `json:"account"`
	Experience      []ExperienceResponse            `json:"experience"`
	Education       []EducationResponse             `json:"education"`
	Skills          []SkillResponse                 `json:"skills"`
	Metrics         Metrics                         `json:"metrics"`
	ProfileStrength int                             `json:"profile_strength"`
	ActivityLevel   string                          `json:"activity_level"`
}

func ToExperienceResponse(e *domainAccount.WorkExperience) ExperienceResponse {
	resp := ExperienceResponse{
		ID:          e.ID,
		Title:       e.Title,
		Company:     e.Company,
		Location:    e.Location,
		StartDate:   e.StartDate.Format(dateLayout),
		IsCurrent:   e.IsCurrent,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
	if e.EndDate != nil {
		end := e.EndDate.Format(dateLayout)
		resp.EndDate = &end
	}
	return resp
}

func ToEducationResponse(e *domainAccount.Education) EducationResponse {
	return EducationResponse{
		ID:           e.ID,
		Degree:       e.Degree,
		Institution:  e.Institution,
		FieldOfStudy: e.FieldOfStudy,
		StartYear:    e.StartYear,
		EndYear:      e.EndYear,
		Grade:        e.Grade,
		Description:  e.Description,
		CreatedAt:    e.CreatedAt,
	}
}

func ToSkillResponse(s *domainAccount.Skill) SkillResponse {
	return SkillResponse{
		ID:              s.ID,
		Name:            s.Name,
		Level:           s.Level,
		LevelDisplay:    s.LevelDisplay(),
		LevelPercentage: s.LevelPercentage(),
	}
}
