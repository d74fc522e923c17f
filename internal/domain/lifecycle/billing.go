package lifecycle

import (
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// commissionNext: pending → approved → paid, strictly linear, no skips.
var commissionNext = map[entity.CommissionStatus]entity.CommissionStatus{
	entity.CommissionPending:  entity.CommissionApproved,
	entity.CommissionApproved: entity.CommissionPaid,
}

// CheckCommission validates a commission transition. Same-status requests are
// idempotent no-ops, including on the terminal paid status.
func CheckCommission(current, target entity.CommissionStatus) (noop bool, err error) {
	if target == current {
		return true, nil
	}
	if next, ok := commissionNext[current]; ok && next == target {
		return false, nil
	}
	allowed := []string{}
	if next, ok := commissionNext[current]; ok {
		allowed = append(allowed, string(next))
	}
	return false, &domain.TransitionError{
		Entity:    "commission",
		Current:   string(current),
		Requested: string(target),
		Allowed:   allowed,
	}
}

// invoiceNext is the invoice table without the cancel escape. cancelled is
// additionally reachable from any non-cancelled status.
var invoiceNext = map[entity.InvoiceStatus][]entity.InvoiceStatus{
	entity.InvoiceDraft:   {entity.InvoiceSent},
	entity.InvoiceSent:    {entity.InvoicePaid, entity.InvoiceOverdue},
	entity.InvoicePaid:    {},
	entity.InvoiceOverdue: {entity.InvoicePaid},
}

// CheckInvoice validates an invoice transition. cancelled is a global escape
// from any non-cancelled status; cancelled itself is terminal.
func CheckInvoice(current, target entity.InvoiceStatus) (noop bool, err error) {
	if target == current {
		return true, nil
	}
	if target == entity.InvoiceCancelled && current != entity.InvoiceCancelled {
		return false, nil
	}
	for _, next := range invoiceNext[current] {
		if next == target {
			return false, nil
		}
	}
	return false, &domain.TransitionError{
		Entity:    "invoice",
		Current:   string(current),
		Requested: string(target),
		Allowed:   InvoiceAllowed(current),
	}
}

// InvoiceAllowed returns the statuses reachable from current, including the
// implicit cancel escape.
func InvoiceAllowed(current entity.InvoiceStatus) []string {
	var out []string
	for _, next := range invoiceNext[current] {
		out = append(out, string(next))
	}
	if current != entity.InvoiceCancelled {
		out = append(out, string(entity.InvoiceCancelled))
	}
	return out
}
