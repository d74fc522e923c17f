package job

import (
	"context"
	"time"

	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/lifecycle"
	"github.com/ecotrace/itad-api/internal/domain/repository"
	"github.com/ecotrace/itad-api/pkg/logger"
)

// UseCase drives the driver-facing job lifecycle. Stages past `warehouse`
// are not settable here; they arrive through the booking cascade.
type UseCase struct {
	tx       repository.TxRunner
	jobs     repository.JobRepository
	bookings repository.BookingRepository
	log      *logger.Logger
}

// NewUseCase wires the job use case.
func NewUseCase(tx repository.TxRunner, jobs repository.JobRepository, bookings repository.BookingRepository, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, jobs: jobs, bookings: bookings, log: log}
}

// GetByID fetches one job.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.JobResponse, error) {
	j, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToJobResponse(j), nil
}

// List pages jobs, optionally filtered by status.
func (uc *UseCase) List(ctx context.Context, status string, page dto.PageRequest) ([]*dto.JobResponse, error) {
	page.DefaultPage()
	if status != "" && !lifecycle.ValidJobStatus(entity.JobStatus(status)) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.jobs.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// ListByDriver pages the jobs assigned to one driver.
func (uc *UseCase) ListByDriver(ctx context.Context, driverID string, page dto.PageRequest) ([]*dto.JobResponse, error) {
	page.DefaultPage()
	list, err := uc.jobs.ListByDriver(ctx, driverID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// UpdateStatus applies a driver-initiated job transition, including the
// booked→en-route shortcut for drivers with direct access. Same-status
// requests are idempotent no-ops. Reaching `collected` triggers the one
// reverse cascade in the system: the linked booking auto-advances
// scheduled→collected (conditional, best-effort). actorID is audit-only.
func (uc *UseCase) UpdateStatus(ctx context.Context, jobID string, target entity.JobStatus, actorID string) (*dto.JobResponse, error) {
	if !lifecycle.ValidJobStatus(target) {
		return nil, domain.ErrInvalidInput
	}

	var j *entity.Job
	var noop bool
	err := uc.tx.Run(ctx, func(r *repository.Repos) error {
		var err error
		j, err = r.Jobs.GetForUpdate(ctx, jobID)
		if err != nil {
			return err
		}
		if j == nil {
			return domain.ErrNotFound
		}
		noop, err = lifecycle.CheckDriverJob(j.Status, target)
		if err != nil || noop {
			return err
		}
		j.Status = target
		j.UpdatedAt = time.Now()
		return r.Jobs.Update(ctx, j)
	})
	if err != nil {
		return nil, err
	}
	if !noop {
		uc.log.Info().Str("job_id", j.ID).Str("status", string(target)).Str("actor", actorID).Msg("job advanced")
		if target == entity.JobCollected {
			uc.syncBookingCollected(ctx, j)
		}
	}
	return dto.ToJobResponse(j), nil
}

// MarkCollected is the explicit driver action for the collection milestone.
func (uc *UseCase) MarkCollected(ctx context.Context, jobID, actorID string) (*dto.JobResponse, error) {
	return uc.UpdateStatus(ctx, jobID, entity.JobCollected, actorID)
}

// syncBookingCollected auto-advances the linked booking scheduled→collected.
// Silent skip when the booking has moved on; errors are logged only.
func (uc *UseCase) syncBookingCollected(ctx context.Context, j *entity.Job) {
	if j.BookingID == "" {
		return
	}
	if _, err := uc.bookings.AdvanceIf(ctx, j.BookingID, entity.BookingScheduled, entity.BookingCollected, time.Now()); err != nil {
		uc.log.Warn().Err(err).
			Str("job_id", j.ID).
			Str("booking_id", j.BookingID).
			Msg("booking sync after collection failed")
	}
}

// AttachEvidence stores opaque collection evidence on the job: photo keys,
// signature reference and container seal numbers. Appending, not replacing.
func (uc *UseCase) AttachEvidence(ctx context.Context, jobID string, in dto.AttachEvidenceRequest) (*dto.JobResponse, error) {
	var j *entity.Job
	err := uc.tx.Run(ctx, func(r *repository.Repos) error {
		var err error
		j, err = r.Jobs.GetForUpdate(ctx, jobID)
		if err != nil {
			return err
		}
		if j == nil {
			return domain.ErrNotFound
		}
		j.PhotoKeys = append(j.PhotoKeys, in.PhotoKeys...)
		j.SealNumbers = append(j.SealNumbers, in.SealNumbers...)
		if in.SignatureKey != "" {
			j.SignatureKey = in.SignatureKey
		}
		j.UpdatedAt = time.Now()
		return r.Jobs.Update(ctx, j)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToJobResponse(j), nil
}

func toResponses(list []*entity.Job) []*dto.JobResponse {
	out := make([]*dto.JobResponse, 0, len(list))
	for _, j := range list {
		out = append(out, dto.ToJobResponse(j))
	}
	return out
}
