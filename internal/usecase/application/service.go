package application

import (
	"context"
	"errors"

	domainJob "jobboard/internal/domain/job"
	"jobboard/internal/logger"
	appErrors "jobboard/pkg/errors"
	"jobboard/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventPublisher interface {
	Publish(ctx context.Context, event string, data interface{}) error
}

// Service implements job application use cases
type Service struct {
	jobRepo         domainJob.Repository
	applicationRepo domainJob.ApplicationRepository
	publisher       EventPublisher
}

func NewService(jobRepo domainJob.Repository, applicationRepo domainJob.ApplicationRepository, publisher EventPublisher) *Service {
	return &Service{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		publisher:       publisher,
	}
}

// Apply submits an application to an active job. accountID is nil for guests.
func (s *Service) Apply(ctx context.Context, jobID uuid.UUID, accountID *uuid.UUID, req *ApplyRequest) (*ApplyResponse, error) {
	req.Email = utils.SanitizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err).
			WithDetails(utils.ValidationDetails(err))
	}

	j, err := s.jobRepo.GetActiveByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	app := &domainJob.Application{
		JobID:       j.ID,
		AccountID:   accountID,
		FullName:    utils.SanitizeString(req.FullName),
		Email:       req.Email,
		Phone:       utils.SanitizePhone(req.Phone),
		CoverLetter: utils.SanitizeText(req.CoverLetter),
		ResumeURL:   req.ResumeURL,
		Status:      domainJob.ApplicationPending,
	}

	if err := s.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domainJob.ErrDuplicateApplication) {
			logger.Info("Duplicate application rejected",
				zap.String("job_id", j.ID.String()),
				zap.String("event", "application_duplicate"),
			)
		}
		return nil, err
	}

	s.publish(ctx, &submittedEvent{
		ApplicationID: app.ID,
		JobID:         j.ID,
		AccountID:     accountID,
		Company:       j.Company,
		JobTitle:      j.Title,
	})

	logger.Info("Application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("job_id", j.ID.String()),
		zap.Bool("guest", accountID == nil),
		zap.String("event", "application_submitted"),
	)

	return &ApplyResponse{
		ApplicationID: app.ID,
		JobTitle:      j.Title,
		Company:       j.Company,
	}, nil
}

func (s *Service) ListApplications(ctx context.Context, accountID uuid.UUID) ([]ApplicationResponse, error) {
	apps, err := s.applicationRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	jobs := make(map[uuid.UUID]*domainJob.Job)
	out := make([]ApplicationResponse, len(apps))
	for i, a := range apps {
		j, ok := jobs[a.JobID]
		if !ok {
			j, err = s.lookupJob(ctx, a.JobID)
			if err != nil {
				return nil, err
			}
			jobs[a.JobID] = j
		}
		out[i] = ToApplicationResponse(a, j)
	}
	return out, nil
}

// GetApplication only returns applications owned by accountID.
func (s *Service) GetApplication(ctx context.Context, accountID, applicationID uuid.UUID) (*ApplicationResponse, error) {
	a, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if a.AccountID == nil || *a.AccountID != accountID {
		return nil, domainJob.ErrApplicationNotFound
	}

	j, err := s.lookupJob(ctx, a.JobID)
	if err != nil {
		return nil, err
	}
	resp := ToApplicationResponse(a, j)
	return &resp, nil
}

// lookupJob includes deactivated listings; a missing job yields nil.
func (s *Service) lookupJob(ctx context.Context, jobID uuid.UUID) (*domainJob.Job, error) {
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domainJob.ErrJobNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return j, nil
}

func (s *Service) publish(ctx context.Context, event *submittedEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, domainJob.EventApplicationSubmitted, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("event", domainJob.EventApplicationSubmitted),
			zap.String("application_id", event.ApplicationID.String()),
			zap.Error(err),
		)
	}
}
