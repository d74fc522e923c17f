package processing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/repository"
	"github.com/ecotrace/itad-api/internal/domain/valuation"
	"github.com/ecotrace/itad-api/pkg/logger"
)

// UseCase appends sanitisation and grading evidence and triggers the
// completeness cascade. Records are append-only: duplicates per category are
// allowed, nothing is ever deleted, and only the verification flag mutates.
type UseCase struct {
	bookings      repository.BookingRepository
	sanitisations repository.SanitisationRecordRepository
	gradings      repository.GradingRecordRepository
	resync        BookingResync
	log           *logger.Logger
}

// NewUseCase wires the processing use case.
func NewUseCase(
	bookings repository.BookingRepository,
	sanitisations repository.SanitisationRecordRepository,
	gradings repository.GradingRecordRepository,
	resync BookingResync,
	log *logger.Logger,
) *UseCase {
	return &UseCase{bookings: bookings, sanitisations: sanitisations, gradings: gradings, resync: resync, log: log}
}

// RecordSanitisation appends a sanitisation record for one asset category of
// the booking, then attempts the completeness cascade. The record is
// persisted even if the cascade fails; that failure is logged only.
func (uc *UseCase) RecordSanitisation(ctx context.Context, bookingID string, in dto.RecordSanitisationRequest, performedBy string) (*dto.SanitisationRecordResponse, error) {
	if in.AssetCategoryID == "" || in.Method == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	rec := &entity.SanitisationRecord{
		ID:              uuid.New().String(),
		BookingID:       bookingID,
		AssetCategoryID: in.AssetCategoryID,
		Method:          in.Method,
		PerformedBy:     performedBy,
		PerformedAt:     now,
		CreatedAt:       now,
	}
	if err := uc.sanitisations.Create(ctx, rec); err != nil {
		return nil, err
	}
	uc.attemptCascade(ctx, bookingID, "sanitisation")
	return dto.ToSanitisationRecordResponse(rec), nil
}

// RecordGrading appends a grading record, computing the resale value from the
// fixed base value and grade multiplier, then attempts the completeness
// cascade (non-fatal).
func (uc *UseCase) RecordGrading(ctx context.Context, bookingID string, in dto.RecordGradingRequest, gradedBy string) (*dto.GradingRecordResponse, error) {
	if in.AssetCategoryID == "" || !valuation.IsKnownGrade(in.Grade) {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	rec := &entity.GradingRecord{
		ID:              uuid.New().String(),
		BookingID:       bookingID,
		AssetCategoryID: in.AssetCategoryID,
		Grade:           in.Grade,
		ResaleValue:     valuation.ResaleValue(in.AssetCategoryID, in.Grade),
		GradedBy:        gradedBy,
		GradedAt:        now,
		CreatedAt:       now,
	}
	if err := uc.gradings.Create(ctx, rec); err != nil {
		return nil, err
	}
	uc.attemptCascade(ctx, bookingID, "grading")
	return dto.ToGradingRecordResponse(rec), nil
}

// attemptCascade runs the resync sweep once, post-insert. The sweep itself
// only advances when the booking is in the prerequisite state and every
// line-item category is covered; silent skip otherwise.
func (uc *UseCase) attemptCascade(ctx context.Context, bookingID, kind string) {
	if _, err := uc.resync.Resync(ctx, bookingID); err != nil {
		uc.log.Warn().Err(err).
			Str("booking_id", bookingID).
			Str("record_kind", kind).
			Msg("completeness cascade failed; record kept")
	}
}

// VerifySanitisation flips the verification flag on a sanitisation record.
func (uc *UseCase) VerifySanitisation(ctx context.Context, recordID string) (*dto.SanitisationRecordResponse, error) {
	if err := uc.sanitisations.SetVerified(ctx, recordID); err != nil {
		return nil, err
	}
	rec, err := uc.sanitisations.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToSanitisationRecordResponse(rec), nil
}

// VerifyGrading flips the verification flag on a grading record.
func (uc *UseCase) VerifyGrading(ctx context.Context, recordID string) (*dto.GradingRecordResponse, error) {
	if err := uc.gradings.SetVerified(ctx, recordID); err != nil {
		return nil, err
	}
	rec, err := uc.gradings.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToGradingRecordResponse(rec), nil
}

// ListSanitisation returns all sanitisation records of a booking.
func (uc *UseCase) ListSanitisation(ctx context.Context, bookingID string) ([]*dto.SanitisationRecordResponse, error) {
	recs, err := uc.sanitisations.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SanitisationRecordResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.ToSanitisationRecordResponse(r))
	}
	return out, nil
}

// ListGrading returns all grading records of a booking.
func (uc *UseCase) ListGrading(ctx context.Context, bookingID string) ([]*dto.GradingRecordResponse, error) {
	recs, err := uc.gradings.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.GradingRecordResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.ToGradingRecordResponse(r))
	}
	return out, nil
}
