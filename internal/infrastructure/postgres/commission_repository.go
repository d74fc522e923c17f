package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/repository"
)

var _ repository.CommissionRepository = (*CommissionRepo)(nil)

const commissionColumns = `id, booking_id, reseller_id, reseller_name, client_id,
	commission_percent, base_value, commission_amount, status, period, paid_at, created_at, updated_at`

// CommissionRepo implements the CommissionRepository port on PostgreSQL.
type CommissionRepo struct {
	q Querier
}

// NewCommissionRepository builds the persistence adapter for commissions.
func NewCommissionRepository(q Querier) *CommissionRepo {
	return &CommissionRepo{q: q}
}

// Create inserts the commission. The unique index on booking_id plus ON
// CONFLICT DO NOTHING makes creation at-most-once per booking even under
// concurrent completion attempts; created=false reports the conflict.
func (r *CommissionRepo) Create(ctx context.Context, c *entity.Commission) (bool, error) {
	query := `
		INSERT INTO commissions (id, booking_id, reseller_id, reseller_name, client_id,
			commission_percent, base_value, commission_amount, status, period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (booking_id) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.BookingID, c.ResellerID, c.ResellerName, c.ClientID,
		c.CommissionPercent, c.BaseValue, c.CommissionAmount, c.Status, c.Period,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert commission: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *CommissionRepo) GetByID(ctx context.Context, id string) (*entity.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *CommissionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE id = $1 FOR UPDATE`
	return r.get(ctx, query, id)
}

func (r *CommissionRepo) GetByBookingID(ctx context.Context, bookingID string) (*entity.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE booking_id = $1`
	return r.get(ctx, query, bookingID)
}

func (r *CommissionRepo) get(ctx context.Context, query, arg string) (*entity.Commission, error) {
	var c entity.Commission
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.BookingID, &c.ResellerID, &c.ResellerName, &c.ClientID,
		&c.CommissionPercent, &c.BaseValue, &c.CommissionAmount, &c.Status, &c.Period,
		&c.PaidAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission: %w", err)
	}
	return &c, nil
}

// List returns commissions newest first, optionally filtered by status and payout period.
func (r *CommissionRepo) List(ctx context.Context, status, period string, limit, offset int) ([]*entity.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR period = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, status, period, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Commission
	for rows.Next() {
		var c entity.Commission
		if err := rows.Scan(
			&c.ID, &c.BookingID, &c.ResellerID, &c.ResellerName, &c.ClientID,
			&c.CommissionPercent, &c.BaseValue, &c.CommissionAmount, &c.Status, &c.Period,
			&c.PaidAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan commission: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update writes back the mutable fields of the commission.
func (r *CommissionRepo) Update(ctx context.Context, c *entity.Commission) error {
	query := `
		UPDATE commissions SET status = $2, paid_at = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.Status, c.PaidAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update commission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
