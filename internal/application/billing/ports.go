package billing

import (
	"context"

	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// InvoicePDFGenerator renders the client-facing invoice document.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice) ([]byte, error)
}

// CertificateBuilder produces the data-destruction certificate XML for a
// booking from its sanitisation evidence.
type CertificateBuilder interface {
	Build(b *entity.Booking, records []*entity.SanitisationRecord) ([]byte, error)
}
