package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the top-level contract lifecycle of a collection engagement.
type BookingStatus string

// Booking lifecycle: created → scheduled → collected → sanitised → graded → completed.
// cancelled is reachable from created and scheduled only.
const (
	BookingCreated   BookingStatus = "created"
	BookingScheduled BookingStatus = "scheduled"
	BookingCollected BookingStatus = "collected"
	BookingSanitised BookingStatus = "sanitised"
	BookingGraded    BookingStatus = "graded"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// AssetItem is one line of a booking: an asset category and how many units of it.
type AssetItem struct {
	CategoryID string `json:"categoryId"`
	Quantity   int    `json:"quantity"`
}

// Booking is a client's collection request for IT equipment.
type Booking struct {
	ID            string
	BookingNumber string
	ClientID      string
	ClientName    string
	ResellerID    string // empty when the booking came in directly
	ResellerName  string
	SiteAddress   string
	ScheduledDate *time.Time
	Status        BookingStatus
	AssetItems    []AssetItem

	// Computed at creation from the asset line items.
	EstimatedBuyback decimal.Decimal
	EstimatedCO2e    decimal.Decimal // kg CO2e avoided by reuse/recycling
	CharityPercent   decimal.Decimal

	// At most one job per booking; set once, when a driver is first assigned.
	JobID       string
	DriverID    string
	ScheduledBy string

	// Milestone timestamps, stamped the first time each status is reached.
	ScheduledAt *time.Time
	CollectedAt *time.Time
	SanitisedAt *time.Time
	GradedAt    *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DistinctCategories returns the set of asset category ids in the line items.
func (b *Booking) DistinctCategories() []string {
	seen := make(map[string]struct{}, len(b.AssetItems))
	var out []string
	for _, item := range b.AssetItems {
		if _, ok := seen[item.CategoryID]; ok {
			continue
		}
		seen[item.CategoryID] = struct{}{}
		out = append(out, item.CategoryID)
	}
	return out
}

// TotalQuantity sums the quantities across all line items.
func (b *Booking) TotalQuantity() int {
	total := 0
	for _, item := range b.AssetItems {
		total += item.Quantity
	}
	return total
}
