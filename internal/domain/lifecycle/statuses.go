package lifecycle

import "github.com/ecotrace/itad-api/internal/domain/entity"

var bookingStatuses = map[entity.BookingStatus]bool{
	entity.BookingCreated:   true,
	entity.BookingScheduled: true,
	entity.BookingCollected: true,
	entity.BookingSanitised: true,
	entity.BookingGraded:    true,
	entity.BookingCompleted: true,
	entity.BookingCancelled: true,
}

var jobStatuses = map[entity.JobStatus]bool{
	entity.JobBooked:    true,
	entity.JobRouted:    true,
	entity.JobEnRoute:   true,
	entity.JobArrived:   true,
	entity.JobCollected: true,
	entity.JobWarehouse: true,
	entity.JobSanitised: true,
	entity.JobGraded:    true,
	entity.JobFinalised: true,
}

var commissionStatuses = map[entity.CommissionStatus]bool{
	entity.CommissionPending:  true,
	entity.CommissionApproved: true,
	entity.CommissionPaid:     true,
}

var invoiceStatuses = map[entity.InvoiceStatus]bool{
	entity.InvoiceDraft:     true,
	entity.InvoiceSent:      true,
	entity.InvoicePaid:      true,
	entity.InvoiceOverdue:   true,
	entity.InvoiceCancelled: true,
}

// ValidBookingStatus reports whether s is one of the enumerated literals.
func ValidBookingStatus(s entity.BookingStatus) bool { return bookingStatuses[s] }

// ValidJobStatus reports whether s is one of the enumerated literals.
func ValidJobStatus(s entity.JobStatus) bool { return jobStatuses[s] }

// ValidCommissionStatus reports whether s is one of the enumerated literals.
func ValidCommissionStatus(s entity.CommissionStatus) bool { return commissionStatuses[s] }

// ValidInvoiceStatus reports whether s is one of the enumerated literals.
func ValidInvoiceStatus(s entity.InvoiceStatus) bool { return invoiceStatuses[s] }

// CategoriesCovered reports whether every required category appears in
// recorded: the completeness predicate behind the sanitisation/grading
// auto-advancement.
func CategoriesCovered(required, recorded []string) bool {
	got := make(map[string]struct{}, len(recorded))
	for _, c := range recorded {
		got[c] = struct{}{}
	}
	for _, c := range required {
		if _, ok := got[c]; !ok {
			return false
		}
	}
	return true
}
