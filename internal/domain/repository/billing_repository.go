package repository

import (
	"context"

	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// CommissionRepository is the persistence port for Commission.
type CommissionRepository interface {
	// Create inserts the commission unless one already exists for the same
	// booking (at-most-once per booking). Returns created=false on conflict.
	Create(ctx context.Context, c *entity.Commission) (created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.Commission, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Commission, error)
	GetByBookingID(ctx context.Context, bookingID string) (*entity.Commission, error)
	List(ctx context.Context, status, period string, limit, offset int) ([]*entity.Commission, error)
	Update(ctx context.Context, c *entity.Commission) error
}

// InvoiceRepository is the persistence port for Invoice.
type InvoiceRepository interface {
	// Create inserts the invoice unless one already exists for the same
	// booking (exactly-once per booking). Returns created=false on conflict.
	Create(ctx context.Context, inv *entity.Invoice) (created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	GetByBookingID(ctx context.Context, bookingID string) (*entity.Invoice, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Invoice, error)
	Update(ctx context.Context, inv *entity.Invoice) error
}
