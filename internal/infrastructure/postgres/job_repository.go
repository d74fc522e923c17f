package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

const jobColumns = `id, job_number, booking_id, status, driver_id, driver_name, vehicle,
	asset_items, estimated_buyback, estimated_co2e, photo_keys, signature_key, seal_numbers,
	completed_date, created_at, updated_at`

// JobRepo implements the JobRepository port on PostgreSQL (usable with pool or tx).
type JobRepo struct {
	q Querier
}

// NewJobRepository builds the persistence adapter for jobs. Pass pool or tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

// Create persists a new job. The unique index on booking_id enforces one job per booking.
func (r *JobRepo) Create(ctx context.Context, j *entity.Job) error {
	query := `
		INSERT INTO jobs (id, job_number, booking_id, status, driver_id, driver_name, vehicle,
			asset_items, estimated_buyback, estimated_co2e, photo_keys, signature_key, seal_numbers,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		j.ID, j.JobNumber, j.BookingID, j.Status, j.DriverID, j.DriverName, j.Vehicle,
		j.AssetItems, j.EstimatedBuyback, j.EstimatedCO2e, j.PhotoKeys, j.SignatureKey, j.SealNumbers,
		j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID fetches a job by id. Returns (nil, nil) when it does not exist.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetForUpdate fetches a job and locks its row until the transaction ends.
func (r *JobRepo) GetForUpdate(ctx context.Context, id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 FOR UPDATE`
	return r.get(ctx, query, id)
}

// GetByBookingID fetches the single job of a booking, if one has been created.
func (r *JobRepo) GetByBookingID(ctx context.Context, bookingID string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE booking_id = $1`
	return r.get(ctx, query, bookingID)
}

func (r *JobRepo) get(ctx context.Context, query, arg string) (*entity.Job, error) {
	var j entity.Job
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&j.ID, &j.JobNumber, &j.BookingID, &j.Status, &j.DriverID, &j.DriverName, &j.Vehicle,
		&j.AssetItems, &j.EstimatedBuyback, &j.EstimatedCO2e, &j.PhotoKeys, &j.SignatureKey, &j.SealNumbers,
		&j.CompletedDate, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &j, nil
}

// List returns jobs newest first, optionally filtered by status.
func (r *JobRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

// ListByDriver returns the jobs assigned to one driver, newest first.
func (r *JobRepo) ListByDriver(ctx context.Context, driverID string, limit, offset int) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE driver_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, driverID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list jobs by driver: %w", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func scanJobs(rows pgx.Rows) ([]*entity.Job, error) {
	var out []*entity.Job
	for rows.Next() {
		var j entity.Job
		if err := rows.Scan(
			&j.ID, &j.JobNumber, &j.BookingID, &j.Status, &j.DriverID, &j.DriverName, &j.Vehicle,
			&j.AssetItems, &j.EstimatedBuyback, &j.EstimatedCO2e, &j.PhotoKeys, &j.SignatureKey, &j.SealNumbers,
			&j.CompletedDate, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, &j)
	}
	return out, rows.Err()
}

// Update writes back the mutable fields of the job.
func (r *JobRepo) Update(ctx context.Context, j *entity.Job) error {
	query := `
		UPDATE jobs SET status = $2, driver_id = $3, driver_name = $4, vehicle = $5,
			photo_keys = $6, signature_key = $7, seal_numbers = $8,
			completed_date = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		j.ID, j.Status, j.DriverID, j.DriverName, j.Vehicle,
		j.PhotoKeys, j.SignatureKey, j.SealNumbers,
		j.CompletedDate, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdvanceIf conditionally moves the job from one status to another in a single
// statement. RowsAffected 0 means the job was not in `from` (silent skip).
// A non-nil completedAt stamps the completion date if not already set.
func (r *JobRepo) AdvanceIf(ctx context.Context, id string, from, to entity.JobStatus, completedAt *time.Time) (bool, error) {
	now := time.Now().UTC()
	var cmd pgconn.CommandTag
	var err error
	if completedAt != nil {
		query := `
			UPDATE jobs SET status = $3, completed_date = COALESCE(completed_date, $4), updated_at = $5
			WHERE id = $1 AND status = $2`
		cmd, err = r.q.Exec(ctx, query, id, from, to, *completedAt, now)
	} else {
		query := `
			UPDATE jobs SET status = $3, updated_at = $4
			WHERE id = $1 AND status = $2`
		cmd, err = r.q.Exec(ctx, query, id, from, to, now)
	}
	if err != nil {
		return false, fmt.Errorf("advance job: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
