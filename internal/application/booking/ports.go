package booking

import (
	"context"

	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// CompletionBilling is called synchronously when a booking transitions into
// completed, after the booking row is committed. Implementations must be
// best-effort: creation failures are theirs to log, never to surface, so a
// completion never fails because of secondary bookkeeping.
type CompletionBilling interface {
	OnBookingCompleted(ctx context.Context, b *entity.Booking)
}
