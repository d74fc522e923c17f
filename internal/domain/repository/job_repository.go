package repository

import (
	"context"
	"time"

	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// JobRepository is the persistence port for Job.
type JobRepository interface {
	Create(ctx context.Context, j *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Job, error)
	GetByBookingID(ctx context.Context, bookingID string) (*entity.Job, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Job, error)
	ListByDriver(ctx context.Context, driverID string, limit, offset int) ([]*entity.Job, error)
	Update(ctx context.Context, j *entity.Job) error
	// AdvanceIf atomically moves the job from one status to another. When
	// completedAt is non-nil the completion date is stamped (only if unset).
	// Returns false when the job was not in `from` (silent skip).
	AdvanceIf(ctx context.Context, id string, from, to entity.JobStatus, completedAt *time.Time) (bool, error)
}
