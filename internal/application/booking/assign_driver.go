package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/repository"
)

// AssignDriver schedules a booking in `created`: records the driver and the
// scheduling actor, and creates the job (status `routed`, asset items and
// valuations copied from the booking) exactly once, linking both ways.
func (uc *UseCase) AssignDriver(ctx context.Context, bookingID, driverID, actorID string) (*dto.BookingResponse, error) {
	if driverID == "" {
		return nil, domain.ErrInvalidInput
	}
	driver, err := uc.users.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.ErrNotFound
	}

	var b *entity.Booking
	err = uc.tx.Run(ctx, func(r *repository.Repos) error {
		b, err = r.Bookings.GetForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Status != entity.BookingCreated {
			return &domain.TransitionError{
				Entity:    "booking",
				Current:   string(b.Status),
				Requested: string(entity.BookingScheduled),
				Allowed:   []string{string(entity.BookingScheduled)},
			}
		}

		now := time.Now()
		b.Status = entity.BookingScheduled
		b.DriverID = driverID
		b.ScheduledBy = actorID
		stampMilestone(b, entity.BookingScheduled, now)
		b.UpdatedAt = now

		// One job per booking, created the first time a driver is assigned.
		if b.JobID == "" {
			job := &entity.Job{
				ID:               uuid.New().String(),
				JobNumber:        fmt.Sprintf("JOB-%d", now.UnixMilli()),
				BookingID:        b.ID,
				Status:           entity.JobRouted,
				DriverID:         driverID,
				DriverName:       driver.Name,
				Vehicle:          driver.Vehicle,
				AssetItems:       append([]entity.AssetItem(nil), b.AssetItems...),
				EstimatedBuyback: b.EstimatedBuyback,
				EstimatedCO2e:    b.EstimatedCO2e,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := r.Jobs.Create(ctx, job); err != nil {
				return err
			}
			b.JobID = job.ID
		}
		return r.Bookings.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("booking_id", b.ID).
		Str("driver_id", driverID).
		Str("actor", actorID).
		Str("job_id", b.JobID).
		Msg("driver assigned")
	return dto.ToBookingResponse(b), nil
}
