package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobStatus is the driver-facing operational lifecycle, finer-grained than the booking's.
type JobStatus string

// Job lifecycle: booked → routed → en-route → arrived → collected → warehouse →
// sanitised → graded → finalised. The last three are driven by the booking cascade,
// never set directly by a driver.
const (
	JobBooked    JobStatus = "booked"
	JobRouted    JobStatus = "routed"
	JobEnRoute   JobStatus = "en-route"
	JobArrived   JobStatus = "arrived"
	JobCollected JobStatus = "collected"
	JobWarehouse JobStatus = "warehouse"
	JobSanitised JobStatus = "sanitised"
	JobGraded    JobStatus = "graded"
	JobFinalised JobStatus = "finalised"
)

// Job tracks a single driver's execution of a booking's collection and
// warehouse processing. One per booking, created when a driver is first assigned.
type Job struct {
	ID        string
	JobNumber string // ERP reference
	BookingID string
	Status    JobStatus

	DriverID   string
	DriverName string
	Vehicle    string

	// Mirrors the booking's line items at creation time.
	AssetItems       []AssetItem
	EstimatedBuyback decimal.Decimal
	EstimatedCO2e    decimal.Decimal

	// Collection evidence, opaque to the lifecycle core.
	PhotoKeys    []string
	SignatureKey string
	SealNumbers  []string

	CompletedDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
