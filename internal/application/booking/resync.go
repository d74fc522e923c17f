package booking

import (
	"context"
	"time"

	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/lifecycle"
	"github.com/ecotrace/itad-api/internal/domain/repository"
)

// Resync re-evaluates the sanitisation and grading completeness predicates
// under the booking row lock and applies any advancement the normal record
// path missed (out-of-order driver/admin interleavings leave gaps because
// cascades skip silently). Idempotent: a booking with nothing to catch up is
// returned unchanged.
func (uc *UseCase) Resync(ctx context.Context, bookingID string) (*dto.BookingResponse, error) {
	var b *entity.Booking
	var advanced []entity.BookingStatus
	err := uc.tx.Run(ctx, func(r *repository.Repos) error {
		var err error
		b, err = r.Bookings.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		required := b.DistinctCategories()

		if b.Status == entity.BookingCollected {
			recorded, err := r.SanitisationRecords.DistinctCategories(ctx, b.ID)
			if err != nil {
				return err
			}
			if lifecycle.CategoriesCovered(required, recorded) {
				b.Status = entity.BookingSanitised
				stampMilestone(b, entity.BookingSanitised, now)
				advanced = append(advanced, entity.BookingSanitised)
			}
		}
		if b.Status == entity.BookingSanitised {
			recorded, err := r.GradingRecords.DistinctCategories(ctx, b.ID)
			if err != nil {
				return err
			}
			if lifecycle.CategoriesCovered(required, recorded) {
				b.Status = entity.BookingGraded
				stampMilestone(b, entity.BookingGraded, now)
				advanced = append(advanced, entity.BookingGraded)
			}
		}
		if len(advanced) == 0 {
			return nil
		}
		b.UpdatedAt = now
		return r.Bookings.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	for _, reached := range advanced {
		uc.log.Info().Str("booking_id", b.ID).Str("status", string(reached)).Msg("resync advanced booking")
		uc.afterAdvance(ctx, b, reached)
	}
	return dto.ToBookingResponse(b), nil
}
