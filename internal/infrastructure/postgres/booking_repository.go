package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

const bookingColumns = `id, booking_number, client_id, client_name, reseller_id, reseller_name,
	site_address, scheduled_date, status, asset_items, estimated_buyback, estimated_co2e,
	charity_percent, job_id, driver_id, scheduled_by, scheduled_at, collected_at,
	sanitised_at, graded_at, completed_at, cancelled_at, created_at, updated_at`

// BookingRepo implements the BookingRepository port on PostgreSQL (usable with pool or tx).
type BookingRepo struct {
	q Querier
}

// NewBookingRepository builds the persistence adapter for bookings. Pass pool or tx (Querier).
func NewBookingRepository(q Querier) *BookingRepo {
	return &BookingRepo{q: q}
}

// Create persists a new booking. Asset line items are stored as jsonb.
func (r *BookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_number, client_id, client_name, reseller_id, reseller_name,
			site_address, scheduled_date, status, asset_items, estimated_buyback, estimated_co2e,
			charity_percent, job_id, driver_id, scheduled_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.BookingNumber, b.ClientID, b.ClientName, b.ResellerID, b.ResellerName,
		b.SiteAddress, b.ScheduledDate, b.Status, b.AssetItems, b.EstimatedBuyback, b.EstimatedCO2e,
		b.CharityPercent, b.JobID, b.DriverID, b.ScheduledBy, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID fetches a booking by id. Returns (nil, nil) when it does not exist.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetForUpdate fetches a booking and locks its row until the transaction ends.
func (r *BookingRepo) GetForUpdate(ctx context.Context, id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return r.get(ctx, query, id)
}

func (r *BookingRepo) get(ctx context.Context, query, id string) (*entity.Booking, error) {
	var b entity.Booking
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.BookingNumber, &b.ClientID, &b.ClientName, &b.ResellerID, &b.ResellerName,
		&b.SiteAddress, &b.ScheduledDate, &b.Status, &b.AssetItems, &b.EstimatedBuyback, &b.EstimatedCO2e,
		&b.CharityPercent, &b.JobID, &b.DriverID, &b.ScheduledBy, &b.ScheduledAt, &b.CollectedAt,
		&b.SanitisedAt, &b.GradedAt, &b.CompletedAt, &b.CancelledAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// List returns bookings newest first, optionally filtered by status.
func (r *BookingRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(
			&b.ID, &b.BookingNumber, &b.ClientID, &b.ClientName, &b.ResellerID, &b.ResellerName,
			&b.SiteAddress, &b.ScheduledDate, &b.Status, &b.AssetItems, &b.EstimatedBuyback, &b.EstimatedCO2e,
			&b.CharityPercent, &b.JobID, &b.DriverID, &b.ScheduledBy, &b.ScheduledAt, &b.CollectedAt,
			&b.SanitisedAt, &b.GradedAt, &b.CompletedAt, &b.CancelledAt, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// Update writes back every mutable field of the booking.
func (r *BookingRepo) Update(ctx context.Context, b *entity.Booking) error {
	query := `
		UPDATE bookings SET status = $2, scheduled_date = $3, asset_items = $4,
			estimated_buyback = $5, estimated_co2e = $6, charity_percent = $7,
			job_id = $8, driver_id = $9, scheduled_by = $10,
			scheduled_at = $11, collected_at = $12, sanitised_at = $13,
			graded_at = $14, completed_at = $15, cancelled_at = $16, updated_at = $17
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		b.ID, b.Status, b.ScheduledDate, b.AssetItems,
		b.EstimatedBuyback, b.EstimatedCO2e, b.CharityPercent,
		b.JobID, b.DriverID, b.ScheduledBy,
		b.ScheduledAt, b.CollectedAt, b.SanitisedAt,
		b.GradedAt, b.CompletedAt, b.CancelledAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdvanceIf conditionally moves the booking from one status to another in a
// single statement. The milestone timestamp of the target status is stamped
// only if not already set. RowsAffected 0 means the booking was not in `from`,
// which callers treat as a silent skip.
func (r *BookingRepo) AdvanceIf(ctx context.Context, id string, from, to entity.BookingStatus, now time.Time) (bool, error) {
	col := bookingMilestoneColumn(to)
	query := fmt.Sprintf(`
		UPDATE bookings SET status = $3, %s = COALESCE(%s, $4), updated_at = $4
		WHERE id = $1 AND status = $2`, col, col)
	cmd, err := r.q.Exec(ctx, query, id, from, to, now)
	if err != nil {
		return false, fmt.Errorf("advance booking: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func bookingMilestoneColumn(s entity.BookingStatus) string {
	switch s {
	case entity.BookingScheduled:
		return "scheduled_at"
	case entity.BookingCollected:
		return "collected_at"
	case entity.BookingSanitised:
		return "sanitised_at"
	case entity.BookingGraded:
		return "graded_at"
	case entity.BookingCompleted:
		return "completed_at"
	case entity.BookingCancelled:
		return "cancelled_at"
	default:
		return "updated_at"
	}
}
