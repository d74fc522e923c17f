package billing

import (
	"context"
	"time"

	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/lifecycle"
	"github.com/ecotrace/itad-api/internal/domain/repository"
	"github.com/ecotrace/itad-api/pkg/logger"
)

// InvoiceUseCase drives the invoice billing lifecycle, including the global
// cancel escape (cancellable from any non-cancelled status).
type InvoiceUseCase struct {
	tx       repository.TxRunner
	invoices repository.InvoiceRepository
	log      *logger.Logger
}

// NewInvoiceUseCase wires the use case.
func NewInvoiceUseCase(tx repository.TxRunner, invoices repository.InvoiceRepository, log *logger.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{tx: tx, invoices: invoices, log: log}
}

// GetByID fetches one invoice.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToInvoiceResponse(inv), nil
}

// List pages invoices, optionally filtered by status.
func (uc *InvoiceUseCase) List(ctx context.Context, status string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	if status != "" && !lifecycle.ValidInvoiceStatus(entity.InvoiceStatus(status)) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.invoices.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.ToInvoiceResponse(inv))
	}
	return out, nil
}

// UpdateStatus applies a validated invoice transition. Reaching `paid` stamps
// the paid timestamp once.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, id string, target entity.InvoiceStatus) (*dto.InvoiceResponse, error) {
	if !lifecycle.ValidInvoiceStatus(target) {
		return nil, domain.ErrInvalidInput
	}

	var inv *entity.Invoice
	err := uc.tx.Run(ctx, func(r *repository.Repos) error {
		var err error
		inv, err = r.Invoices.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		noop, err := lifecycle.CheckInvoice(inv.Status, target)
		if err != nil || noop {
			return err
		}
		now := time.Now()
		inv.Status = target
		if target == entity.InvoicePaid && inv.PaidAt == nil {
			inv.PaidAt = &now
		}
		inv.UpdatedAt = now
		return r.Invoices.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToInvoiceResponse(inv), nil
}
