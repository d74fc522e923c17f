package processing

import (
	"context"

	"github.com/ecotrace/itad-api/internal/application/dto"
)

// BookingResync re-evaluates the completeness predicates for a booking and
// applies any pending advancement plus its job cascade. The record use case
// calls it after each record insertion: at least one cascade attempt per
// qualifying record, with failures tolerated as non-fatal.
type BookingResync interface {
	Resync(ctx context.Context, bookingID string) (*dto.BookingResponse, error)
}
