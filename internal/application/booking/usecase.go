package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/lifecycle"
	"github.com/ecotrace/itad-api/internal/domain/repository"
	"github.com/ecotrace/itad-api/internal/domain/valuation"
	"github.com/ecotrace/itad-api/pkg/logger"
)

// UseCase drives the booking lifecycle: creation, driver assignment, status
// transitions with their job cascade, completion with reactive billing
// creation, and the resync sweep.
type UseCase struct {
	tx       repository.TxRunner
	bookings repository.BookingRepository
	jobs     repository.JobRepository
	users    repository.UserRepository
	billing  CompletionBilling
	log      *logger.Logger
}

// NewUseCase wires the booking use case.
func NewUseCase(
	tx repository.TxRunner,
	bookings repository.BookingRepository,
	jobs repository.JobRepository,
	users repository.UserRepository,
	billing CompletionBilling,
	log *logger.Logger,
) *UseCase {
	return &UseCase{tx: tx, bookings: bookings, jobs: jobs, users: users, billing: billing, log: log}
}

// Create registers a booking in `created`, computing buyback and CO2e
// estimates from the asset line items.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if in.ClientID == "" || in.ClientName == "" || len(in.AssetItems) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.AssetItem, 0, len(in.AssetItems))
	for _, item := range in.AssetItems {
		if item.CategoryID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.AssetItem{CategoryID: item.CategoryID, Quantity: item.Quantity})
	}
	if in.CharityPercent.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	b := &entity.Booking{
		ID:               uuid.New().String(),
		BookingNumber:    fmt.Sprintf("BK-%d", now.UnixMilli()),
		ClientID:         in.ClientID,
		ClientName:       in.ClientName,
		ResellerID:       in.ResellerID,
		ResellerName:     in.ResellerName,
		SiteAddress:      in.SiteAddress,
		ScheduledDate:    in.ScheduledDate,
		Status:           entity.BookingCreated,
		AssetItems:       items,
		EstimatedBuyback: valuation.EstimatedBuyback(items),
		EstimatedCO2e:    valuation.EstimatedCO2e(items),
		CharityPercent:   in.CharityPercent,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	uc.log.Info().Str("booking_id", b.ID).Str("booking_number", b.BookingNumber).Msg("booking created")
	return dto.ToBookingResponse(b), nil
}

// GetByID fetches one booking.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.BookingResponse, error) {
	b, err := uc.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToBookingResponse(b), nil
}

// List pages bookings, optionally filtered by status.
func (uc *UseCase) List(ctx context.Context, status string, page dto.PageRequest) ([]*dto.BookingResponse, error) {
	page.DefaultPage()
	if status != "" && !lifecycle.ValidBookingStatus(entity.BookingStatus(status)) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.bookings.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.ToBookingResponse(b))
	}
	return out, nil
}

// stampMilestone sets the milestone timestamp for the status being entered,
// only the first time it is reached.
func stampMilestone(b *entity.Booking, status entity.BookingStatus, now time.Time) {
	switch status {
	case entity.BookingScheduled:
		if b.ScheduledAt == nil {
			b.ScheduledAt = &now
		}
	case entity.BookingCollected:
		if b.CollectedAt == nil {
			b.CollectedAt = &now
		}
	case entity.BookingSanitised:
		if b.SanitisedAt == nil {
			b.SanitisedAt = &now
		}
	case entity.BookingGraded:
		if b.GradedAt == nil {
			b.GradedAt = &now
		}
	case entity.BookingCompleted:
		if b.CompletedAt == nil {
			b.CompletedAt = &now
		}
	case entity.BookingCancelled:
		if b.CancelledAt == nil {
			b.CancelledAt = &now
		}
	}
}

// cascadeJob applies the booking→job sync for the status the booking just
// reached. Conditional on the job's current state (silent skip) and
// best-effort: a failed sync is logged, never surfaced.
func (uc *UseCase) cascadeJob(ctx context.Context, b *entity.Booking, reached entity.BookingStatus) {
	casc, ok := lifecycle.CascadeForBooking(reached)
	if !ok || b.JobID == "" {
		return
	}
	var completedAt *time.Time
	if casc.Final {
		now := time.Now()
		completedAt = &now
	}
	if _, err := uc.jobs.AdvanceIf(ctx, b.JobID, casc.Require, casc.Target, completedAt); err != nil {
		uc.log.Warn().Err(err).
			Str("booking_id", b.ID).
			Str("job_id", b.JobID).
			Str("booking_status", string(reached)).
			Msg("job sync after booking advance failed")
	}
}

// afterAdvance runs the post-commit side effects of a booking advance.
func (uc *UseCase) afterAdvance(ctx context.Context, b *entity.Booking, reached entity.BookingStatus) {
	uc.cascadeJob(ctx, b, reached)
	if reached == entity.BookingCompleted && uc.billing != nil {
		uc.billing.OnBookingCompleted(ctx, b)
	}
}
