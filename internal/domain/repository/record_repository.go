package repository

import (
	"context"

	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// SanitisationRecordRepository is the persistence port for sanitisation
// evidence. Records are append-only; only the verification flag mutates.
type SanitisationRecordRepository interface {
	Create(ctx context.Context, r *entity.SanitisationRecord) error
	GetByID(ctx context.Context, id string) (*entity.SanitisationRecord, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*entity.SanitisationRecord, error)
	// DistinctCategories returns the set of asset category ids covered by all
	// records of the booking (the completeness predicate's left-hand side).
	DistinctCategories(ctx context.Context, bookingID string) ([]string, error)
	SetVerified(ctx context.Context, id string) error
}

// GradingRecordRepository is the persistence port for grading evidence.
type GradingRecordRepository interface {
	Create(ctx context.Context, r *entity.GradingRecord) error
	GetByID(ctx context.Context, id string) (*entity.GradingRecord, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*entity.GradingRecord, error)
	DistinctCategories(ctx context.Context, bookingID string) ([]string, error)
	SetVerified(ctx context.Context, id string) error
}
