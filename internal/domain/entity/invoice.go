package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the client billing lifecycle.
type InvoiceStatus string

// Invoice lifecycle: draft → sent → paid/overdue, with cancelled reachable from
// any non-cancelled status.
const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// InvoiceLine is one billing line, derived from a booking asset line item.
type InvoiceLine struct {
	CategoryID string          `json:"categoryId"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
}

// Invoice bills the client for a completed booking. Created reactively,
// exactly once per booking, regardless of reseller.
type Invoice struct {
	ID            string
	InvoiceNumber string
	BookingID     string
	ClientID      string
	ClientName    string

	Lines    []InvoiceLine
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal

	IssueDate time.Time
	DueDate   time.Time // issue date + 30 days
	Status    InvoiceStatus
	PaidAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
