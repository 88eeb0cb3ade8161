package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderColumns maps allow-listed ordering fields to SQL columns.
var orderColumns = map[string]string{
	job.OrderByCreatedAt: "created_at",
	job.OrderByTitle:     "title",
	job.OrderByCompany:   "company",
	job.OrderByMinSalary: "min_salary",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// JobRepository implements job.Repository
type JobRepository struct {
	db *DB
}

func NewJobRepository(db *DB) job.Repository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Search(ctx context.Context, query *job.Query) ([]*job.Job, int64, error) {
	var dbModels []models.JobModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.JobModel{}).Where("is_active = ?", true)

	if query.Category != "" {
		db = db.Where("category = ?", string(query.Category))
	}
	if query.JobType != "" {
		db = db.Where("job_type = ?", string(query.JobType))
	}
	if query.ExperienceLevel != "" {
		db = db.Where("experience_level = ?", string(query.ExperienceLevel))
	}
	if query.WorkMode != "" {
		db = db.Where("work_mode = ?", string(query.WorkMode))
	}
	if query.MinSalary != nil {
		db = db.Where("min_salary >= ?", *query.MinSalary)
	}
	if query.MaxSalary != nil {
		db = db.Where("max_salary <= ?", *query.MaxSalary)
	}
	if query.Keyword != "" {
		pattern := containsPattern(query.Keyword)
		db = db.Where("(title ILIKE ? OR company ILIKE ? OR description ILIKE ?)", pattern, pattern, pattern)
	}
	if query.Location != "" {
		db = db.Where("location ILIKE ?", containsPattern(query.Location))
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	terms := query.Terms()
	for _, term := range terms {
		db = db.Order(orderClause(orderColumns[term.Field], term.Desc))
	}
	db = db.Order(orderClause("id", terms[0].Desc))

	if query.PageSize > 0 {
		db = db.Limit(query.PageSize).Offset(query.Offset())
	}

	if err := db.Find(&dbModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search jobs: %w", err)
	}

	jobs := make([]*job.Job, len(dbModels))
	for i := range dbModels {
		jobs[i] = toJobEntity(&dbModels[i])
	}

	return jobs, total, nil
}

func (r *JobRepository) GetActiveByID(ctx context.Context, jobID uuid.UUID) (*job.Job, error) {
	return r.get(ctx, "id = ? AND is_active = true", jobID)
}

func (r *JobRepository) GetByID(ctx context.Context, jobID uuid.UUID) (*job.Job, error) {
	return r.get(ctx, "id = ?", jobID)
}

func (r *JobRepository) get(ctx context.Context, where string, args ...interface{}) (*job.Job, error) {
	var dbModel models.JobModel
	err := r.db.DB.WithContext(ctx).Where(where, args...).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, job.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return toJobEntity(&dbModel), nil
}

func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	j.UpdatedAt = j.CreatedAt

	if err := r.db.DB.WithContext(ctx).Create(toJobModel(j)).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *JobRepository) Update(ctx context.Context, j *job.Job) error {
	j.UpdatedAt = time.Now()

	// Select("*") so zero values such as is_active=false are written too.
	result := r.db.DB.WithContext(ctx).Model(&models.JobModel{}).
		Where("id = ?", j.ID).
		Select("*").Omit("id", "created_at").
		Updates(toJobModel(j))

	if result.Error != nil {
		return fmt.Errorf("failed to update job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return job.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Deactivate(ctx context.Context, jobID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Model(&models.JobModel{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return job.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Stats(ctx context.Context) (*job.Stats, error) {
	stats := &job.Stats{}
	err := r.db.DB.WithContext(ctx).Raw(`
        SELECT
            COUNT(*) AS total_jobs,
            COUNT(DISTINCT category) AS categories,
            COUNT(DISTINCT company) AS companies
        FROM jobs
        WHERE is_active = true
    `).Scan(stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get job statistics: %w", err)
	}
	return stats, nil
}

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func orderClause(column string, desc bool) string {
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

func toJobModel(j *job.Job) *models.JobModel {
	return &models.JobModel{
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
		Skills:          j.Skills,
		CompanyLogo:     j.CompanyLogo,
		CompanySize:     string(j.CompanySize),
		IsActive:        j.IsActive,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func toJobEntity(m *models.JobModel) *job.Job {
	return &job.Job{
		ID:              m.ID,
		Title:           m.Title,
		Company:         m.Company,
		Location:        m.Location,
		Category:        job.Category(m.Category),
		JobType:         job.JobType(m.JobType),
		ExperienceLevel: job.ExperienceLevel(m.ExperienceLevel),
		WorkMode:        job.WorkMode(m.WorkMode),
		MinSalary:       m.MinSalary,
		MaxSalary:       m.MaxSalary,
		SalaryDisplay:   m.SalaryDisplay,
		Description:     m.Description,
		Requirements:    m.Requirements,
		Skills:          m.Skills,
		CompanyLogo:     m.CompanyLogo,
		CompanySize:     job.CompanySize(m.CompanySize),
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ApplicationRepository implements job.ApplicationRepository
type ApplicationRepository struct {
	db *DB
}

func NewApplicationRepository(db *DB) job.ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *job.Application) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt

	if err := r.db.DB.WithContext(ctx).Create(toApplicationModel(a)).Error; err != nil {
		if isUniqueViolation(err, "idx_applications_job_email") {
			return job.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, applicationID uuid.UUID) (*job.Application, error) {
	var dbModel models.ApplicationModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", applicationID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, job.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return toApplicationEntity(&dbModel), nil
}

func (r *ApplicationRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*job.Application, error) {
	var dbModels []models.ApplicationModel
	err := r.db.DB.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	out := make([]*job.Application, len(dbModels))
	for i := range dbModels {
		out[i] = toApplicationEntity(&dbModels[i])
	}
	return out, nil
}

func toApplicationModel(a *job.Application) *models.ApplicationModel {
	return &models.ApplicationModel{
		ID:          a.ID,
		JobID:       a.JobID,
		AccountID:   a.AccountID,
		FullName:    a.FullName,
		Email:       a.Email,
		Phone:       a.Phone,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toApplicationEntity(m *models.ApplicationModel) *job.Application {
	return &job.Application{
		ID:          m.ID,
		JobID:       m.JobID,
		AccountID:   m.AccountID,
		FullName:    m.FullName,
		Email:       m.Email,
		Phone:       m.Phone,
		CoverLetter: m.CoverLetter,
		ResumeURL:   m.ResumeURL,
		Status:      job.ApplicationStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
