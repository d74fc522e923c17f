package repository

import "context"

// Repos bundles the repositories bound to a single unit of work (one
// transaction when backed by Postgres).
type Repos struct {
	Bookings            BookingRepository
	Jobs                JobRepository
	SanitisationRecords SanitisationRecordRepository
	GradingRecords      GradingRecordRepository
	Commissions         CommissionRepository
	Invoices            InvoiceRepository
}

// TxRunner runs fn inside one transaction; the repos passed to fn are bound
// to it. fn returning an error rolls everything back.
type TxRunner interface {
	Run(ctx context.Context, fn func(r *Repos) error) error
}
