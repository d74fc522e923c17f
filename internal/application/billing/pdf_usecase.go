package billing

import (
	"context"

	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/repository"
)

// PDFUseCase renders the graphic representation of an invoice.
type PDFUseCase struct {
	invoices  repository.InvoiceRepository
	generator InvoicePDFGenerator
}

// NewPDFUseCase wires the use case.
func NewPDFUseCase(invoices repository.InvoiceRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, generator: generator}
}

// GenerateInvoicePDF loads the invoice and renders it.
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateInvoicePDF(ctx, inv)
}
