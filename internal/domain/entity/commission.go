package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionStatus is the reseller payout lifecycle.
type CommissionStatus string

// Commission lifecycle: pending → approved → paid.
const (
	CommissionPending  CommissionStatus = "pending"
	CommissionApproved CommissionStatus = "approved"
	CommissionPaid     CommissionStatus = "paid"
)

// Commission is a reseller's earned percentage of a completed booking's buyback
// value. Created reactively, at most once per booking, only when the booking
// has a reseller.
type Commission struct {
	ID           string
	BookingID    string
	ResellerID   string
	ResellerName string
	ClientID     string

	CommissionPercent decimal.Decimal
	BaseValue         decimal.Decimal // the booking's estimated buyback
	CommissionAmount  decimal.Decimal

	Status CommissionStatus
	Period string // year-month of creation, e.g. "2026-08"
	PaidAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
