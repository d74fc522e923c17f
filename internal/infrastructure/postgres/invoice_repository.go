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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, invoice_number, booking_id, client_id, client_name,
	lines, subtotal, tax, total, issue_date, due_date, status, paid_at, created_at, updated_at`

// InvoiceRepo implements the InvoiceRepository port on PostgreSQL. Lines are
// stored as jsonb.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the persistence adapter for invoices.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserts the invoice. ON CONFLICT on the booking_id unique index makes
// creation exactly-once per booking; created=false reports the conflict.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) (bool, error) {
	query := `
		INSERT INTO invoices (id, invoice_number, booking_id, client_id, client_name,
			lines, subtotal, tax, total, issue_date, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (booking_id) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		inv.ID, inv.InvoiceNumber, inv.BookingID, inv.ClientID, inv.ClientName,
		inv.Lines, inv.Subtotal, inv.Tax, inv.Total, inv.IssueDate, inv.DueDate,
		inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert invoice: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	return r.get(ctx, query, id)
}

func (r *InvoiceRepo) GetByBookingID(ctx context.Context, bookingID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE booking_id = $1`
	return r.get(ctx, query, bookingID)
}

func (r *InvoiceRepo) get(ctx context.Context, query, arg string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.BookingID, &inv.ClientID, &inv.ClientName,
		&inv.Lines, &inv.Subtotal, &inv.Tax, &inv.Total, &inv.IssueDate, &inv.DueDate,
		&inv.Status, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// List returns invoices newest first, optionally filtered by status.
func (r *InvoiceRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.InvoiceNumber, &inv.BookingID, &inv.ClientID, &inv.ClientName,
			&inv.Lines, &inv.Subtotal, &inv.Tax, &inv.Total, &inv.IssueDate, &inv.DueDate,
			&inv.Status, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}

// Update writes back the mutable fields of the invoice.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET status = $2, paid_at = $3, due_date = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, inv.ID, inv.Status, inv.PaidAt, inv.DueDate, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
