package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"jobboard/internal/domain/cache"
	domainJob "jobboard/internal/domain/job"
	"jobboard/internal/logger"
	appErrors "jobboard/pkg/errors"
	"jobboard/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatsCacheKey = "jobs:stats"
	StatsCacheTTL = 5 * time.Minute
)

// EventPublisher announces listing changes. Failures never fail the request.
type EventPublisher interface {
	Publish(ctx context.Context, event string, data interface{}) error
}

// Service implements job listing use cases
type Service struct {
	jobRepo   domainJob.Repository
	cache     cache.Cache
	publisher EventPublisher
}

func NewService(jobRepo domainJob.Repository, c cache.Cache, publisher EventPublisher) *Service {
	return &Service{
		jobRepo:   jobRepo,
		cache:     c,
		publisher: publisher,
	}
}

func (s *Service) Search(ctx context.Context, params url.Values) (*SearchResponse, error) {
	query, err := ParseSearchParams(params)
	if err != nil {
		return nil, err
	}

	jobs, total, err := s.jobRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]JobResponse, len(jobs))
	for i, j := range jobs {
		responses[i] = *ToJobResponse(j)
	}

	return &SearchResponse{
		Jobs:       responses,
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: utils.TotalPages(total, query.PageSize),
	}, nil
}

func (s *Service) GetJob(ctx context.Context, jobID uuid.UUID) (*JobResponse, error) {
	j, err := s.jobRepo.GetActiveByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return ToJobResponse(j), nil
}

func (s *Service) Categories() []domainJob.CategoryOption {
	return domainJob.Categories()
}

// Stats serves the active listing summary from cache when possible. Cache
// failures fall through to the repository.
func (s *Service) Stats(ctx context.Context) (*domainJob.Stats, error) {
	if cached, err := s.cache.Get(ctx, StatsCacheKey); err == nil {
		var stats domainJob.Stats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("Failed to read job stats from cache", zap.Error(err))
	}

	stats, err := s.jobRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, StatsCacheKey, string(encoded), StatsCacheTTL); err != nil {
			logger.Warn("Failed to cache job stats", zap.Error(err))
		}
	}

	return stats, nil
}

func (s *Service) CreateJob(ctx context.Context, req *CreateJobRequest) (*JobResponse, error) {
	if err := validateJobRequest(req); err != nil {
		return nil, err
	}

	j := &domainJob.Job{IsActive: true}
	req.apply(j)

	if err := s.jobRepo.Create(ctx, j); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	s.publish(ctx, domainJob.EventJobCreated, j)

	logger.Info("Job created",
		zap.String("job_id", j.ID.String()),
		zap.String("company", j.Company),
		zap.String("event", "job_created"),
	)

	return ToJobResponse(j), nil
}

func (s *Service) UpdateJob(ctx context.Context, jobID uuid.UUID, req *UpdateJobRequest) (*JobResponse, error) {
	if err := validateJobRequest(&req.CreateJobRequest); err != nil {
		return nil, err
	}

	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	req.apply(j)
	if req.IsActive != nil {
		j.IsActive = *req.IsActive
	}

	if err := s.jobRepo.Update(ctx, j); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	s.publish(ctx, domainJob.EventJobUpdated, j)

	logger.Info("Job updated",
		zap.String("job_id", j.ID.String()),
		zap.String("event", "job_updated"),
	)

	return ToJobResponse(j), nil
}

// DeleteJob deactivates the listing; applications keep referencing it.
func (s *Service) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	if err := s.jobRepo.Deactivate(ctx, jobID); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	s.publish(ctx, domainJob.EventJobDeactivated, map[string]string{"job_id": jobID.String()})

	logger.Info("Job deactivated",
		zap.String("job_id", jobID.String()),
		zap.String("event", "job_deactivated"),
	)

	return nil
}

func validateJobRequest(req *CreateJobRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err).
			WithDetails(utils.ValidationDetails(err))
	}
	if req.MinSalary != nil && req.MaxSalary != nil && *req.MinSalary > *req.MaxSalary {
		return appErrors.NewAppError(appErrors.CodeValidation, "min_salary cannot exceed max_salary", nil)
	}
	return nil
}

func (s *Service) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, StatsCacheKey); err != nil {
		logger.Warn("Failed to invalidate job stats cache", zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, event string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if j, ok := data.(*domainJob.Job); ok {
		data = ToJobResponse(j)
	}
	if err := s.publisher.Publish(ctx, event, data); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("event", event),
			zap.Error(fmt.Errorf("publish: %w", err)),
		)
	}
}
