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

// UpdateStatus applies a validated booking transition. Re-requesting the
// current status succeeds as a no-op; milestone timestamps are stamped only
// the first time a status is reached. On success the job cascade and, for
// completion, reactive billing creation run post-commit (best-effort).
func (uc *UseCase) UpdateStatus(ctx context.Context, bookingID string, target entity.BookingStatus) (*dto.BookingResponse, error) {
	if !lifecycle.ValidBookingStatus(target) {
		return nil, domain.ErrInvalidInput
	}

	var b *entity.Booking
	var noop bool
	err := uc.tx.Run(ctx, func(r *repository.Repos) error {
		var err error
		b, err = r.Bookings.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		noop, err = lifecycle.CheckBooking(b.Status, target)
		if err != nil || noop {
			return err
		}
		now := time.Now()
		b.Status = target
		stampMilestone(b, target, now)
		b.UpdatedAt = now
		return r.Bookings.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	if !noop {
		uc.afterAdvance(ctx, b, target)
	}
	return dto.ToBookingResponse(b), nil
}

// Complete is the convenience wrapper for the final transition: the booking
// must currently be `graded`. Calling it on an already completed booking is
// an idempotent success. actorID is audit-only.
func (uc *UseCase) Complete(ctx context.Context, bookingID, actorID string) (*dto.BookingResponse, error) {
	var b *entity.Booking
	var noop bool
	err := uc.tx.Run(ctx, func(r *repository.Repos) error {
		var err error
		b, err = r.Bookings.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Status == entity.BookingCompleted {
			noop = true
			return nil
		}
		if b.Status != entity.BookingGraded {
			return &domain.TransitionError{
				Entity:    "booking",
				Current:   string(b.Status),
				Requested: string(entity.BookingCompleted),
				Allowed:   lifecycle.BookingAllowed(b.Status),
			}
		}
		now := time.Now()
		b.Status = entity.BookingCompleted
		stampMilestone(b, entity.BookingCompleted, now)
		b.UpdatedAt = now
		return r.Bookings.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	if !noop {
		uc.log.Info().Str("booking_id", b.ID).Str("actor", actorID).Msg("booking completed")
		uc.afterAdvance(ctx, b, entity.BookingCompleted)
	}
	return dto.ToBookingResponse(b), nil
}
