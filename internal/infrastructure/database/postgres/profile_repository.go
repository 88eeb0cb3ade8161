package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobboard/internal/domain/account"
	"jobboard/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const skillNameIndex = "idx_skills_account_name"

type ExperienceRepository struct {
	db *DB
}

func NewExperienceRepository(db *DB) account.ExperienceRepository {
	return &ExperienceRepository{db: db}
}

func (r *ExperienceRepository) List(ctx context.Context, accountID uuid.UUID) ([]*account.WorkExperience, error) {
	var dbModels []models.WorkExperienceModel
	err := r.db.DB.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("start_date DESC").Order("id DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list work experience: %w", err)
	}

	out := make([]*account.WorkExperience, len(dbModels))
	for i := range dbModels {
		out[i] = toExperienceEntity(&dbModels[i])
	}
	return out, nil
}

func (r *ExperienceRepository) Get(ctx context.Context, accountID, id uuid.UUID) (*account.WorkExperience, error) {
	var dbModel models.WorkExperienceModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrExperienceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work experience: %w", err)
	}
	return toExperienceEntity(&dbModel), nil
}

func (r *ExperienceRepository) Create(ctx context.Context, e *account.WorkExperience) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt

	if err := r.db.DB.WithContext(ctx).Create(toExperienceModel(e)).Error; err != nil {
		return fmt.Errorf("failed to create work experience: %w", err)
	}
	return nil
}

func (r *ExperienceRepository) Update(ctx context.Context, e *account.WorkExperience) error {
	e.UpdatedAt = time.Now()
	result := r.db.DB.WithContext(ctx).Model(&models.WorkExperienceModel{}).
		Where("id = ? AND account_id = ?", e.ID, e.AccountID).
		Updates(map[string]interface{}{
			"title":       e.Title,
			"company":     e.Company,
			"location":    e.Location,
			"start_date":  e.StartDate,
			"end_date":    e.EndDate,
			"is_current":  e.IsCurrent,
			"description": e.Description,
			"updated_at":  e.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update work experience: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrExperienceNotFound
	}
	return nil
}

func (r *ExperienceRepository) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&models.WorkExperienceModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete work experience: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrExperienceNotFound
	}
	return nil
}

type EducationRepository struct {
	db *DB
}

func NewEducationRepository(db *DB) account.EducationRepository {
	return &EducationRepository{db: db}
}

func (r *EducationRepository) List(ctx context.Context, accountID uuid.UUID) ([]*account.Education, error) {
	var dbModels []models.EducationModel
	err := r.db.DB.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("start_year DESC").Order("id DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list education: %w", err)
	}

	out := make([]*account.Education, len(dbModels))
	for i := range dbModels {
		out[i] = toEducationEntity(&dbModels[i])
	}
	return out, nil
}

func (r *EducationRepository) Get(ctx context.Context, accountID, id uuid.UUID) (*account.Education, error) {
	var dbModel models.EducationModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrEducationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get education: %w", err)
	}
	return toEducationEntity(&dbModel), nil
}

func (r *EducationRepository) Create(ctx context.Context, e *account.Education) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt

	if err := r.db.DB.WithContext(ctx).Create(toEducationModel(e)).Error; err != nil {
		return fmt.Errorf("failed to create education: %w", err)
	}
	return nil
}

func (r *EducationRepository) Update(ctx context.Context, e *account.Education) error {
	e.UpdatedAt = time.Now()
	result := r.db.DB.WithContext(ctx).Model(&models.EducationModel{}).
		Where("id = ? AND account_id = ?", e.ID, e.AccountID).
		Updates(map[string]interface{}{
			"degree":         e.Degree,
			"institution":    e.Institution,
			"field_of_study": e.FieldOfStudy,
			"start_year":     e.StartYear,
			"end_year":       e.EndYear,
			"grade":          e.Grade,
			"description":    e.Description,
			"updated_at":     e.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update education: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrEducationNotFound
	}
	return nil
}

func (r *EducationRepository) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&models.EducationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete education: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrEducationNotFound
	}
	return nil
}

type SkillRepository struct {
	db *DB
}

func NewSkillRepository(db *DB) account.SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) List(ctx context.Context, accountID uuid.UUID) ([]*account.Skill, error) {
	var dbModels []models.SkillModel
	err := r.db.DB.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("level DESC").Order("name ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	out := make([]*account.Skill, len(dbModels))
	for i := range dbModels {
		out[i] = toSkillEntity(&dbModels[i])
	}
	return out, nil
}

func (r *SkillRepository) Get(ctx context.Context, accountID, id uuid.UUID) (*account.Skill, error) {
	var dbModel models.SkillModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrSkillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}
	return toSkillEntity(&dbModel), nil
}

func (r *SkillRepository) Create(ctx context.Context, s *account.Skill) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt

	if err := r.db.DB.WithContext(ctx).Create(toSkillModel(s)).Error; err != nil {
		if isUniqueViolation(err, skillNameIndex) {
			return account.ErrDuplicateSkill
		}
		return fmt.Errorf("failed to create skill: %w", err)
	}
	return nil
}

func (r *SkillRepository) Update(ctx context.Context, s *account.Skill) error {
	s.UpdatedAt = time.Now()
	result := r.db.DB.WithContext(ctx).Model(&models.SkillModel{}).
		Where("id = ? AND account_id = ?", s.ID, s.AccountID).
		Updates(map[string]interface{}{
			"name":       s.Name,
			"level":      s.Level,
			"updated_at": s.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error, skillNameIndex) {
			return account.ErrDuplicateSkill
		}
		return fmt.Errorf("failed to update skill: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrSkillNotFound
	}
	return nil
}

func (r *SkillRepository) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&models.SkillModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete skill: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrSkillNotFound
	}
	return nil
}

func toExperienceModel(e *account.WorkExperience) *models.WorkExperienceModel {
	return &models.WorkExperienceModel{
		ID:          e.ID,
		AccountID:   e.AccountID,
		Title:       e.Title,
		Company:     e.Company,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		IsCurrent:   e.IsCurrent,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toExperienceEntity(m *models.WorkExperienceModel) *account.WorkExperience {
	return &account.WorkExperience{
		ID:          m.ID,
		AccountID:   m.AccountID,
		Title:       m.Title,
		Company:     m.Company,
		Location:    m.Location,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		IsCurrent:   m.IsCurrent,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toEducationModel(e *account.Education) *models.EducationModel {
	return &models.EducationModel{
		ID:           e.ID,
		AccountID:    e.AccountID,
		Degree:       e.Degree,
		Institution:  e.Institution,
		FieldOfStudy: e.FieldOfStudy,
		StartYear:    e.StartYear,
		EndYear:      e.EndYear,
		Grade:        e.Grade,
		Description:  e.Description,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toEducationEntity(m *models.EducationModel) *account.Education {
	return &account.Education{
		ID:           m.ID,
		AccountID:    m.AccountID,
		Degree:       m.Degree,
		Institution:  m.Institution,
		FieldOfStudy: m.FieldOfStudy,
		StartYear:    m.StartYear,
		EndYear:      m.EndYear,
		Grade:        m.Grade,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toSkillModel(s *account.Skill) *models.SkillModel {
	return &models.SkillModel{
		ID:        s.ID,
		AccountID: s.AccountID,
		Name:      s.Name,
		Level:     s.Level,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSkillEntity(m *models.SkillModel) *account.Skill {
	return &account.Skill{
		ID:        m.ID,
		AccountID: m.AccountID,
		Name:      m.Name,
		Level:     m.Level,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
