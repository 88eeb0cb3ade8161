package job

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines job persistence operations. Search only ever returns active jobs.
type Repository interface {
	Search(ctx context.Context, query *Query) ([]*Job, int64, error)
	GetActiveByID(ctx context.Context, jobID uuid.UUID) (*Job, error)
	GetByID(ctx context.Context, jobID uuid.UUID) (*Job, error)
	Create(ctx context.Context, job *Job) error
	Update(ctx context.Context, job *Job) error
	Deactivate(ctx context.Context, jobID uuid.UUID) error
	Stats(ctx context.Context) (*Stats, error)
}

type ApplicationRepository interface {
	// Create fails with ErrDuplicateApplication when the email already applied to the job.
	Create(ctx context.Context, application *Application) error
	GetByID(ctx context.Context, applicationID uuid.UUID) (*Application, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Application, error)
}
