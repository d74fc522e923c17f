package repository

import (
	"context"
	"time"

	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// BookingRepository is the persistence port for Booking.
// Get methods return (nil, nil) when the id does not resolve.
type BookingRepository interface {
	Create(ctx context.Context, b *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	// GetForUpdate locks the booking row for the rest of the transaction.
	// Only meaningful when the repository is bound to a transaction.
	GetForUpdate(ctx context.Context, id string) (*entity.Booking, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Booking, error)
	Update(ctx context.Context, b *entity.Booking) error
	// AdvanceIf atomically moves the booking from one status to another,
	// stamping the matching milestone timestamp only if not already set.
	// Returns false (no error) when the booking was not in `from`, which is
	// the cascade's silent-skip case.
	AdvanceIf(ctx context.Context, id string, from, to entity.BookingStatus, now time.Time) (bool, error)
}
