package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

// JobRepository evaluates job.Query in process with the same semantics the
// postgres repository pushes into SQL.
type JobRepository struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*job.Job
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[uuid.UUID]*job.Job)}
}

var _ job.Repository = (*JobRepository)(nil)

func (r *JobRepository) Search(_ context.Context, query *job.Query) ([]*job.Job, int64, error) {
	r.mu.RLock()
	matched := make([]*job.Job, 0)
	for _, j := range r.jobs {
		if query.Matches(j) {
			matched = append(matched, cloneJob(j))
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, k int) bool {
		return query.Less(matched[i], matched[k])
	})

	total := int64(len(matched))
	start := query.Offset()
	if start < 0 || start >= len(matched) {
		return []*job.Job{}, total, nil
	}
	end := len(matched)
	if query.PageSize > 0 && query.PageSize < end-start {
		end = start + query.PageSize
	}
	return matched[start:end], total, nil
}

func (r *JobRepository) GetActiveByID(ctx context.Context, jobID uuid.UUID) (*job.Job, error) {
	j, err := r.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !j.IsActive {
		return nil, job.ErrJobNotFound
	}
	return j, nil
}

func (r *JobRepository) GetByID(_ context.Context, jobID uuid.UUID) (*job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[jobID]
	if !ok {
		return nil, job.ErrJobNotFound
	}
	return cloneJob(j), nil
}

// Create keeps a caller-supplied ID and CreatedAt so fixtures can control ordering.
func (r *JobRepository) Create(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	j.UpdatedAt = j.CreatedAt
	r.jobs[j.ID] = cloneJob(j)
	return nil
}

func (r *JobRepository) Update(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.jobs[j.ID]
	if !ok {
		return job.ErrJobNotFound
	}
	j.CreatedAt = existing.CreatedAt
	j.UpdatedAt = time.Now()
	r.jobs[j.ID] = cloneJob(j)
	return nil
}

func (r *JobRepository) Deactivate(_ context.Context, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[jobID]
	if !ok {
		return job.ErrJobNotFound
	}
	j.IsActive = false
	j.UpdatedAt = time.Now()
	return nil
}

func (r *JobRepository) Stats(_ context.Context) (*job.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make(map[job.Category]struct{})
	companies := make(map[string]struct{})
	stats := &job.Stats{}
	for _, j := range r.jobs {
		if !j.IsActive {
			continue
		}
		stats.TotalJobs++
		categories[j.Category] = struct{}{}
		companies[j.Company] = struct{}{}
	}
	stats.Categories = int64(len(categories))
	stats.Companies = int64(len(companies))
	return stats, nil
}

func cloneJob(j *job.Job) *job.Job {
	cp := *j
	if j.Skills != nil {
		cp.Skills = append([]string(nil), j.Skills...)
	}
	return &cp
}

type ApplicationRepository struct {
	mu           sync.RWMutex
	applications map[uuid.UUID]*job.Application
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{applications: make(map[uuid.UUID]*job.Application)}
}

var _ job.ApplicationRepository = (*ApplicationRepository)(nil)

func (r *ApplicationRepository) Create(_ context.Context, a *job.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.applications {
		if existing.JobID == a.JobID && strings.EqualFold(existing.Email, a.Email) {
			return job.ErrDuplicateApplication
		}
	}

	now := time.Now()
	a.ID = uuid.New()
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	r.applications[a.ID] = &cp
	return nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, applicationID uuid.UUID) (*job.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.applications[applicationID]
	if !ok {
		return nil, job.ErrApplicationNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *ApplicationRepository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*job.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*job.Application, 0)
	for _, a := range r.applications {
		if a.AccountID != nil && *a.AccountID == accountID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
