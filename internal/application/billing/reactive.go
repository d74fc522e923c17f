package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/valuation"
	"github.com/ecotrace/itad-api/pkg/logger"
)

// ReactiveCreator creates the Commission and Invoice records triggered by a
// booking completing. Both creations are best-effort and independent: either
// failing is logged and never unwinds the completion. Unique booking_id
// constraints in the repositories make repeats at-most-once.
type ReactiveCreator struct {
	commissions CommissionStore
	invoices    InvoiceStore
	log         *logger.Logger
}

// CommissionStore is the slice of the commission repository the creator needs.
type CommissionStore interface {
	Create(ctx context.Context, c *entity.Commission) (bool, error)
}

// InvoiceStore is the slice of the invoice repository the creator needs.
type InvoiceStore interface {
	Create(ctx context.Context, inv *entity.Invoice) (bool, error)
}

// NewReactiveCreator wires the creator.
func NewReactiveCreator(commissions CommissionStore, invoices InvoiceStore, log *logger.Logger) *ReactiveCreator {
	return &ReactiveCreator{commissions: commissions, invoices: invoices, log: log}
}

// OnBookingCompleted runs synchronously within booking completion, after the
// booking row is committed.
func (s *ReactiveCreator) OnBookingCompleted(ctx context.Context, b *entity.Booking) {
	s.createCommission(ctx, b)
	s.createInvoice(ctx, b)
}

// createCommission creates the reseller payout record iff the booking has a
// reseller id and name.
func (s *ReactiveCreator) createCommission(ctx context.Context, b *entity.Booking) {
	if b.ResellerID == "" || b.ResellerName == "" {
		return
	}
	now := time.Now()
	c := &entity.Commission{
		ID:                uuid.New().String(),
		BookingID:         b.ID,
		ResellerID:        b.ResellerID,
		ResellerName:      b.ResellerName,
		ClientID:          b.ClientID,
		CommissionPercent: valuation.DefaultCommissionPercent,
		BaseValue:         b.EstimatedBuyback,
		CommissionAmount:  valuation.CommissionAmount(b.EstimatedBuyback, valuation.DefaultCommissionPercent),
		Status:            entity.CommissionPending,
		Period:            now.Format("2006-01"),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	created, err := s.commissions.Create(ctx, c)
	if err != nil {
		s.log.Error().Err(err).Str("booking_id", b.ID).Msg("commission creation failed; booking completion unaffected")
		return
	}
	if !created {
		s.log.Debug().Str("booking_id", b.ID).Msg("commission already exists for booking")
		return
	}
	s.log.Info().Str("booking_id", b.ID).Str("commission_id", c.ID).Str("amount", c.CommissionAmount.String()).Msg("commission created")
}

// createInvoice always creates the client invoice, reseller or not.
func (s *ReactiveCreator) createInvoice(ctx context.Context, b *entity.Booking) {
	now := time.Now()
	inv := BuildInvoice(b, now)
	created, err := s.invoices.Create(ctx, inv)
	if err != nil {
		s.log.Error().Err(err).Str("booking_id", b.ID).Msg("invoice creation failed; booking completion unaffected")
		return
	}
	if !created {
		s.log.Debug().Str("booking_id", b.ID).Msg("invoice already exists for booking")
		return
	}
	s.log.Info().Str("booking_id", b.ID).Str("invoice_id", inv.ID).Str("total", inv.Total.String()).Msg("invoice created")
}

// BuildInvoice derives the invoice from the booking's asset quantities: one
// line per line item at unitPrice = round(buyback / total quantity), 20% VAT,
// due 30 days after issue.
func BuildInvoice(b *entity.Booking, now time.Time) *entity.Invoice {
	unitPrice := valuation.InvoiceUnitPrice(b.EstimatedBuyback, b.TotalQuantity())
	lines := make([]entity.InvoiceLine, 0, len(b.AssetItems))
	subtotal := decimal.Zero
	for _, item := range b.AssetItems {
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, entity.InvoiceLine{
			CategoryID: item.CategoryID,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice,
			LineTotal:  lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}
	tax := valuation.InvoiceTax(subtotal)

	return &entity.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: fmt.Sprintf("INV-%d", now.UnixMilli()),
		BookingID:     b.ID,
		ClientID:      b.ClientID,
		ClientName:    b.ClientName,
		Lines:         lines,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         subtotal.Add(tax),
		IssueDate:     now,
		DueDate:       now.AddDate(0, 0, valuation.InvoiceDueDays),
		Status:        entity.InvoiceDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
