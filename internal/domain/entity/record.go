package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SanitisationRecord is append-only evidence that data destruction was applied
// to one asset category of a booking. Duplicates per category are allowed;
// records are never deleted and only the verification flag is ever mutated.
type SanitisationRecord struct {
	ID              string
	BookingID       string
	AssetCategoryID string
	Method          string // e.g. "nist-800-88-purge", "shred", "degauss"
	PerformedBy     string
	Verified        bool
	PerformedAt     time.Time
	CreatedAt       time.Time
}

// GradingRecord is append-only evidence of a condition/resale assessment of
// one asset category of a booking.
type GradingRecord struct {
	ID              string
	BookingID       string
	AssetCategoryID string
	Grade           string // "A", "B", "C", "D", "Recycled"
	ResaleValue     decimal.Decimal
	GradedBy        string
	Verified        bool
	GradedAt        time.Time
	CreatedAt       time.Time
}
