package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// UpdateCommissionStatusRequest requests a commission transition.
type UpdateCommissionStatusRequest struct {
	Status string `json:"status"`
}

// UpdateInvoiceStatusRequest requests an invoice transition.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// CommissionResponse view of a commission.
type CommissionResponse struct {
	ID                string          `json:"id"`
	BookingID         string          `json:"bookingId"`
	ResellerID        string          `json:"resellerId"`
	ResellerName      string          `json:"resellerName"`
	ClientID          string          `json:"clientId,omitempty"`
	CommissionPercent decimal.Decimal `json:"commissionPercent"`
	BaseValue         decimal.Decimal `json:"baseValue"`
	CommissionAmount  decimal.Decimal `json:"commissionAmount"`
	Status            string          `json:"status"`
	Period            string          `json:"period"`
	PaidAt            *time.Time      `json:"paidAt,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// InvoiceResponse view of an invoice.
type InvoiceResponse struct {
	ID            string               `json:"id"`
	InvoiceNumber string               `json:"invoiceNumber"`
	BookingID     string               `json:"bookingId"`
	ClientID      string               `json:"clientId"`
	ClientName    string               `json:"clientName"`
	Lines         []entity.InvoiceLine `json:"lines"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Tax           decimal.Decimal      `json:"tax"`
	Total         decimal.Decimal      `json:"total"`
	IssueDate     time.Time            `json:"issueDate"`
	DueDate       time.Time            `json:"dueDate"`
	Status        string               `json:"status"`
	PaidAt        *time.Time           `json:"paidAt,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// ToCommissionResponse maps the entity.
func ToCommissionResponse(c *entity.Commission) *CommissionResponse {
	if c == nil {
		return nil
	}
	return &CommissionResponse{
		ID:                c.ID,
		BookingID:         c.BookingID,
		ResellerID:        c.ResellerID,
		ResellerName:      c.ResellerName,
		ClientID:          c.ClientID,
		CommissionPercent: c.CommissionPercent,
		BaseValue:         c.BaseValue,
		CommissionAmount:  c.CommissionAmount,
		Status:            string(c.Status),
		Period:            c.Period,
		PaidAt:            c.PaidAt,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// ToInvoiceResponse maps the entity.
func ToInvoiceResponse(inv *entity.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		BookingID:     inv.BookingID,
		ClientID:      inv.ClientID,
		ClientName:    inv.ClientName,
		Lines:         inv.Lines,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Status:        string(inv.Status),
		PaidAt:        inv.PaidAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
