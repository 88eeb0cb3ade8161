package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	domainAccount "jobboard/internal/domain/account"
	"jobboard/internal/logger"
	accountUsecase "jobboard/internal/usecase/account"
	appErrors "jobboard/pkg/errors"
	"jobboard/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Service manages the authenticated account's profile and its sub-resources.
// Every lookup is scoped to the caller's account id.
type Service struct {
	accountRepo    domainAccount.Repository
	experienceRepo domainAccount.ExperienceRepository
	educationRepo  domainAccount.EducationRepository
	skillRepo      domainAccount.SkillRepository
}

func NewService(
	accountRepo domainAccount.Repository,
	experienceRepo domainAccount.ExperienceRepository,
	educationRepo domainAccount.EducationRepository,
	skillRepo domainAccount.SkillRepository,
) *Service {
	return &Service{
		accountRepo:    accountRepo,
		experienceRepo: experienceRepo,
		educationRepo:  educationRepo,
		skillRepo:      skillRepo,
	}
}

func validationError(err error) error {
	return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err).
		WithDetails(utils.ValidationDetails(err))
}

func (s *Service) GetProfile(ctx context.Context, accountID uuid.UUID) (*ProfileResponse, error) {
	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, acct)
}

func (s *Service) UpdateProfile(ctx context.Context, accountID uuid.UUID, req *UpdateProfileRequest) (*ProfileResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		acct.FirstName = utils.SanitizeString(*req.FirstName)
	}
	if req.LastName != nil {
		acct.LastName = utils.SanitizeString(*req.LastName)
	}
	if req.Phone != nil {
		phone := utils.SanitizePhone(*req.Phone)
		acct.Phone = &phone
	}
	if req.ResumeURL != nil {
		acct.ResumeURL = req.ResumeURL
	}
	if req.ProfilePictureURL != nil {
		acct.ProfilePictureURL = req.ProfilePictureURL
	}

	if err := s.accountRepo.Update(ctx, acct); err != nil {
		return nil, err
	}

	logger.Info("Profile updated",
		zap.String("account_id", accountID.String()),
		zap.String("event", "profile_updated"),
	)

	return s.buildProfile(ctx, acct)
}

func (s *Service) buildProfile(ctx context.Context, acct *domainAccount.Account) (*ProfileResponse, error) {
	experiences, err := s.experienceRepo.List(ctx, acct.ID)
	if err != nil {
		return nil, err
	}
	educations, err := s.educationRepo.List(ctx, acct.ID)
	if err != nil {
		return nil, err
	}
	skills, err := s.skillRepo.List(ctx, acct.ID)
	if err != nil {
		return nil, err
	}

	resp := &ProfileResponse{
		Account:    accountUsecase.ToAccountResponse(acct),
		Experience: make([]ExperienceResponse, len(experiences)),
		Education:  make([]EducationResponse, len(educations)),
		Skills:     make([]SkillResponse, len(skills)),
		Metrics: Metrics{
			ExperienceCount: len(experiences),
			EducationCount:  len(educations),
			SkillCount:      len(skills),
		},
	}
	for i, e := range experiences {
		resp.Experience[i] = ToExperienceResponse(e)
	}
	for i, e := range educations {
		resp.Education[i] = ToEducationResponse(e)
	}
	for i, sk := range skills {
		resp.Skills[i] = ToSkillResponse(sk)
	}

	resp.ProfileStrength = Strength(acct, resp.Metrics)
	resp.ActivityLevel = ActivityLevel(resp.ProfileStrength)
	return resp, nil
}

// Work experience

func (s *Service) ListExperience(ctx context.Context, accountID uuid.UUID) ([]ExperienceResponse, error) {
	items, err := s.experienceRepo.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]ExperienceResponse, len(items))
	for i, e := range items {
		out[i] = ToExperienceResponse(e)
	}
	return out, nil
}

func (s *Service) GetExperience(ctx context.Context, accountID, id uuid.UUID) (*ExperienceResponse, error) {
	e, err := s.experienceRepo.Get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	resp := ToExperienceResponse(e)
	return &resp, nil
}

func (s *Service) CreateExperience(ctx context.Context, accountID uuid.UUID, req *ExperienceRequest) (*ExperienceResponse, error) {
	e := &domainAccount.WorkExperience{AccountID: accountID}
	if err := req.apply(e); err != nil {
		return nil, err
	}
	if err := s.experienceRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	resp := ToExperienceResponse(e)
	return &resp, nil
}

func (s *Service) UpdateExperience(ctx context.Context, accountID, id uuid.UUID, req *ExperienceRequest) (*ExperienceResponse, error) {
	e, err := s.experienceRepo.Get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if err := req.apply(e); err != nil {
		return nil, err
	}
	if err := s.experienceRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	resp := ToExperienceResponse(e)
	return &resp, nil
}

func (s *Service) DeleteExperience(ctx context.Context, accountID, id uuid.UUID) error {
	return s.experienceRepo.Delete(ctx, accountID, id)
}

func (r *ExperienceRequest) apply(e *domainAccount.WorkExperience) error {
	if err := utils.ValidateStruct(r); err != nil {
		return validationError(err)
	}

	start, _ := time.Parse(dateLayout, r.StartDate)
	var end *time.Time
	if r.EndDate != nil && !r.IsCurrent {
		parsed, _ := time.Parse(dateLayout, *r.EndDate)
		if parsed.Before(start) {
			return appErrors.NewAppError(appErrors.CodeValidation, "end_date cannot be before start_date", nil).
				WithDetails(map[string]string{"end_date": "gtefield"})
		}
		end = &parsed
	}

	e.Title = utils.SanitizeString(r.Title)
	e.Company = utils.SanitizeString(r.Company)
	e.Location = utils.SanitizeString(r.Location)
	e.StartDate = start
	e.EndDate = end
	e.IsCurrent = r.IsCurrent
	e.Description = utils.SanitizeText(r.Description)
	return nil
}

// Education

func (s *Service) ListEducation(ctx context.Context, accountID uuid.UUID) ([]EducationResponse, error) {
	items, err := s.educationRepo.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]EducationResponse, len(items))
	for i, e := range items {
		out[i] = ToEducationResponse(e)
	}
	return out, nil
}

func (s *Service) GetEducation(ctx context.Context, accountID, id uuid.UUID) (*EducationResponse, error) {
	e, err := s.educationRepo.Get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	resp := ToEducationResponse(e)
	return &resp, nil
}

func (s *Service) CreateEducation(ctx context.Context, accountID uuid.UUID, req *EducationRequest) (*EducationResponse, error) {
	e := &domainAccount.Education{AccountID: accountID}
	if err := req.apply(e); err != nil {
		return nil, err
	}
	if err := s.educationRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	resp := ToEducationResponse(e)
	return &resp, nil
}

func (s *Service) UpdateEducation(ctx context.Context, accountID, id uuid.UUID, req *EducationRequest) (*EducationResponse, error) {
	e, err := s.educationRepo.Get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if err := req.apply(e); err != nil {
		return nil, err
	}
	if err := s.educationRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	resp := ToEducationResponse(e)
	return &resp, nil
}

func (s *Service) DeleteEducation(ctx context.Context, accountID, id uuid.UUID) error {
	return s.educationRepo.Delete(ctx, accountID, id)
}

func (r *EducationRequest) apply(e *domainAccount.Education) error {
	if err := utils.ValidateStruct(r); err != nil {
		return validationError(err)
	}
	if r.EndYear != nil && *r.EndYear < r.StartYear {
		return appErrors.NewAppError(appErrors.CodeValidation, "end_year cannot be before start_year", nil).
			WithDetails(map[string]string{"end_year": "gtefield"})
	}

	e.Degree = utils.SanitizeString(r.Degree)
	e.Institution = utils.SanitizeString(r.Institution)
	e.FieldOfStudy = utils.SanitizeString(r.FieldOfStudy)
	e.StartYear = r.StartYear
	e.EndYear = r.EndYear
	e.Grade = utils.SanitizeString(r.Grade)
	e.Description = utils.SanitizeText(r.Description)
	return nil
}

// Skills

func (s *Service) ListSkills(ctx context.Context, accountID uuid.UUID) ([]SkillResponse, error) {
	items, err := s.skillRepo.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]SkillResponse, len(items))
	for i, sk := range items {
		out[i] = ToSkillResponse(sk)
	}
	return out, nil
}

func (s *Service) GetSkill(ctx context.Context, accountID, id uuid.UUID) (*SkillResponse, error) {
	sk, err := s.skillRepo.Get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSkillResponse(sk)
	return &resp, nil
}

func (s *Service) CreateSkill(ctx context.Context, accountID uuid.UUID, req *SkillRequest) (*SkillResponse, error) {
	sk := &domainAccount.Skill{AccountID: accountID, Level: domainAccount.SkillLevelDefault}
	if err := req.apply(sk); err != nil {
		return nil, err
	}
	if err := s.skillRepo.Create(ctx, sk); err != nil {
		return nil, s.skillError(err, sk)
	}
	resp := ToSkillResponse(sk)
	return &resp, nil
}

func (s *Service) UpdateSkill(ctx context.Context, accountID, id uuid.UUID, req *SkillRequest) (*SkillResponse, error) {
	sk, err := s.skillRepo.Get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if err := req.apply(sk); err != nil {
		return nil, err
	}
	if err := s.skillRepo.Update(ctx, sk); err != nil {
		return nil, s.skillError(err, sk)
	}
	resp := ToSkillResponse(sk)
	return &resp, nil
}

func (s *Service) DeleteSkill(ctx context.Context, accountID, id uuid.UUID) error {
	return s.skillRepo.Delete(ctx, accountID, id)
}

func (s *Service) skillError(err error, sk *domainAccount.Skill) error {
	if errors.Is(err, domainAccount.ErrDuplicateSkill) {
		logger.Debug("Duplicate skill rejected",
			zap.String("account_id", sk.AccountID.String()),
			zap.String("skill", sk.Name),
			zap.String("event", "skill_duplicate"),
		)
	}
	return err
}

// NormalizeSkillName trims and title-cases a skill name.
func NormalizeSkillName(name string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(name), " "))
}

func (r *SkillRequest) apply(sk *domainAccount.Skill) error {
	if err := utils.ValidateStruct(r); err != nil {
		return validationError(err)
	}
	sk.Name = NormalizeSkillName(r.Name)
	if r.Level != nil {
		sk.Level = *r.Level
	}
	return nil
}
