package repository

import (
	"context"

	"github.com/jhoicas/revops-api/internal/domain/entity"
)

// JobFilter narrows List. Empty fields do not filter.
type JobFilter struct {
	WorkshopID string
	ManagerID  string
	Status     entity.JobStatus
}

// JobRepository persistence port for Job and its audit timeline.
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	// GetByID fills Job.ManagerName.
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	// List orders newest first and fills Job.ManagerName.
	List(ctx context.Context, f JobFilter) ([]*entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error

	AddUpdate(ctx context.Context, u *entity.JobUpdate) error
	// ListUpdates orders newest first.
	ListUpdates(ctx context.Context, jobID string) ([]*entity.JobUpdate, error)
}
