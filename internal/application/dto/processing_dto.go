package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// RecordSanitisationRequest appends a sanitisation record for one asset category.
type RecordSanitisationRequest struct {
	AssetCategoryID string `json:"assetCategoryId"`
	Method          string `json:"method"`
}

// RecordGradingRequest appends a grading record for one asset category.
type RecordGradingRequest struct {
	AssetCategoryID string `json:"assetCategoryId"`
	Grade           string `json:"grade"`
}

// SanitisationRecordResponse view of a sanitisation record.
type SanitisationRecordResponse struct {
	ID              string    `json:"id"`
	BookingID       string    `json:"bookingId"`
	AssetCategoryID string    `json:"assetCategoryId"`
	Method          string    `json:"method"`
	PerformedBy     string    `json:"performedBy"`
	Verified        bool      `json:"verified"`
	PerformedAt     time.Time `json:"performedAt"`
}

// GradingRecordResponse view of a grading record.
type GradingRecordResponse struct {
	ID              string          `json:"id"`
	BookingID       string          `json:"bookingId"`
	AssetCategoryID string          `json:"assetCategoryId"`
	Grade           string          `json:"grade"`
	ResaleValue     decimal.Decimal `json:"resaleValue"`
	GradedBy        string          `json:"gradedBy"`
	Verified        bool            `json:"verified"`
	GradedAt        time.Time       `json:"gradedAt"`
}

// ToSanitisationRecordResponse maps the entity.
func ToSanitisationRecordResponse(r *entity.SanitisationRecord) *SanitisationRecordResponse {
	if r == nil {
		return nil
	}
	return &SanitisationRecordResponse{
		ID:              r.ID,
		BookingID:       r.BookingID,
		AssetCategoryID: r.AssetCategoryID,
		Method:          r.Method,
		PerformedBy:     r.PerformedBy,
		Verified:        r.Verified,
		PerformedAt:     r.PerformedAt,
	}
}

// ToGradingRecordResponse maps the entity.
func ToGradingRecordResponse(r *entity.GradingRecord) *GradingRecordResponse {
	if r == nil {
		return nil
	}
	return &GradingRecordResponse{
		ID:              r.ID,
		BookingID:       r.BookingID,
		AssetCategoryID: r.AssetCategoryID,
		Grade:           r.Grade,
		ResaleValue:     r.ResaleValue,
		GradedBy:        r.GradedBy,
		Verified:        r.Verified,
		GradedAt:        r.GradedAt,
	}
}
