package billing

import (
	"context"

	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/repository"
)

// CertificateUseCase issues the data-destruction certificate for a booking.
// Available once the booking's data has been sanitised (sanitised milestone
// stamped), which may be before grading or completion.
type CertificateUseCase struct {
	bookings      repository.BookingRepository
	sanitisations repository.SanitisationRecordRepository
	builder       CertificateBuilder
}

// NewCertificateUseCase wires the use case.
func NewCertificateUseCase(
	bookings repository.BookingRepository,
	sanitisations repository.SanitisationRecordRepository,
	builder CertificateBuilder,
) *CertificateUseCase {
	return &CertificateUseCase{bookings: bookings, sanitisations: sanitisations, builder: builder}
}

// GenerateCertificate builds the certificate XML from the booking's
// sanitisation evidence.
func (uc *CertificateUseCase) GenerateCertificate(ctx context.Context, bookingID string) ([]byte, error) {
	b, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.SanitisedAt == nil {
		return nil, domain.ErrConflict // booking not sanitised yet
	}
	records, err := uc.sanitisations.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return uc.builder.Build(b, records)
}
