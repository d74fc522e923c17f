package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/repository"
)

var (
	_ repository.SanitisationRecordRepository = (*SanitisationRecordRepo)(nil)
	_ repository.GradingRecordRepository      = (*GradingRecordRepo)(nil)
)

// SanitisationRecordRepo implements the SanitisationRecordRepository port on
// PostgreSQL. Records are insert-only; only the verified flag is ever updated.
type SanitisationRecordRepo struct {
	q Querier
}

// NewSanitisationRecordRepository builds the persistence adapter for sanitisation records.
func NewSanitisationRecordRepository(q Querier) *SanitisationRecordRepo {
	return &SanitisationRecordRepo{q: q}
}

func (r *SanitisationRecordRepo) Create(ctx context.Context, rec *entity.SanitisationRecord) error {
	query := `
		INSERT INTO sanitisation_records (id, booking_id, asset_category_id, method, performed_by, verified, performed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.BookingID, rec.AssetCategoryID, rec.Method, rec.PerformedBy,
		rec.Verified, rec.PerformedAt, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sanitisation record: %w", err)
	}
	return nil
}

func (r *SanitisationRecordRepo) GetByID(ctx context.Context, id string) (*entity.SanitisationRecord, error) {
	query := `
		SELECT id, booking_id, asset_category_id, method, performed_by, verified, performed_at, created_at
		FROM sanitisation_records WHERE id = $1`
	var rec entity.SanitisationRecord
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.BookingID, &rec.AssetCategoryID, &rec.Method, &rec.PerformedBy,
		&rec.Verified, &rec.PerformedAt, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sanitisation record: %w", err)
	}
	return &rec, nil
}

func (r *SanitisationRecordRepo) ListByBooking(ctx context.Context, bookingID string) ([]*entity.SanitisationRecord, error) {
	query := `
		SELECT id, booking_id, asset_category_id, method, performed_by, verified, performed_at, created_at
		FROM sanitisation_records WHERE booking_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list sanitisation records: %w", err)
	}
	defer rows.Close()

	var out []*entity.SanitisationRecord
	for rows.Next() {
		var rec entity.SanitisationRecord
		if err := rows.Scan(
			&rec.ID, &rec.BookingID, &rec.AssetCategoryID, &rec.Method, &rec.PerformedBy,
			&rec.Verified, &rec.PerformedAt, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sanitisation record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// DistinctCategories returns the asset categories with at least one
// sanitisation record for the booking.
func (r *SanitisationRecordRepo) DistinctCategories(ctx context.Context, bookingID string) ([]string, error) {
	query := `SELECT DISTINCT asset_category_id FROM sanitisation_records WHERE booking_id = $1`
	return distinctCategories(ctx, r.q, query, bookingID)
}

func (r *SanitisationRecordRepo) SetVerified(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE sanitisation_records SET verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("verify sanitisation record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GradingRecordRepo implements the GradingRecordRepository port on PostgreSQL.
type GradingRecordRepo struct {
	q Querier
}

// NewGradingRecordRepository builds the persistence adapter for grading records.
func NewGradingRecordRepository(q Querier) *GradingRecordRepo {
	return &GradingRecordRepo{q: q}
}

func (r *GradingRecordRepo) Create(ctx context.Context, rec *entity.GradingRecord) error {
	query := `
		INSERT INTO grading_records (id, booking_id, asset_category_id, grade, resale_value, graded_by, verified, graded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.BookingID, rec.AssetCategoryID, rec.Grade, rec.ResaleValue,
		rec.GradedBy, rec.Verified, rec.GradedAt, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert grading record: %w", err)
	}
	return nil
}

func (r *GradingRecordRepo) GetByID(ctx context.Context, id string) (*entity.GradingRecord, error) {
	query := `
		SELECT id, booking_id, asset_category_id, grade, resale_value, graded_by, verified, graded_at, created_at
		FROM grading_records WHERE id = $1`
	var rec entity.GradingRecord
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.BookingID, &rec.AssetCategoryID, &rec.Grade, &rec.ResaleValue,
		&rec.GradedBy, &rec.Verified, &rec.GradedAt, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get grading record: %w", err)
	}
	return &rec, nil
}

func (r *GradingRecordRepo) ListByBooking(ctx context.Context, bookingID string) ([]*entity.GradingRecord, error) {
	query := `
		SELECT id, booking_id, asset_category_id, grade, resale_value, graded_by, verified, graded_at, created_at
		FROM grading_records WHERE booking_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list grading records: %w", err)
	}
	defer rows.Close()

	var out []*entity.GradingRecord
	for rows.Next() {
		var rec entity.GradingRecord
		if err := rows.Scan(
			&rec.ID, &rec.BookingID, &rec.AssetCategoryID, &rec.Grade, &rec.ResaleValue,
			&rec.GradedBy, &rec.Verified, &rec.GradedAt, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan grading record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// DistinctCategories returns the asset categories with at least one grading
// record for the booking.
func (r *GradingRecordRepo) DistinctCategories(ctx context.Context, bookingID string) ([]string, error) {
	query := `SELECT DISTINCT asset_category_id FROM grading_records WHERE booking_id = $1`
	return distinctCategories(ctx, r.q, query, bookingID)
}

func (r *GradingRecordRepo) SetVerified(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE grading_records SET verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("verify grading record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func distinctCategories(ctx context.Context, q Querier, query, bookingID string) ([]string, error) {
	rows, err := q.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var cat string
		if err := rows.Scan(&cat); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}
