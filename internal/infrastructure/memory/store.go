// Package memory provides in-memory implementations of the repository ports.
// It backs the application test suites and the local development mode where a
// PostgreSQL instance is not available. Entities are copied on the way in and
// out so callers never share memory with the store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/repository"
)

// Store holds all in-memory state. All repository views share one Store and
// one mutex.
type Store struct {
	mu sync.Mutex

	bookings      map[string]*entity.Booking
	jobs          map[string]*entity.Job
	sanitisations map[string]*entity.SanitisationRecord
	gradings      map[string]*entity.GradingRecord
	commissions   map[string]*entity.Commission
	invoices      map[string]*entity.Invoice
	users         map[string]*entity.User
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		bookings:      make(map[string]*entity.Booking),
		jobs:          make(map[string]*entity.Job),
		sanitisations: make(map[string]*entity.SanitisationRecord),
		gradings:      make(map[string]*entity.GradingRecord),
		commissions:   make(map[string]*entity.Commission),
		invoices:      make(map[string]*entity.Invoice),
		users:         make(map[string]*entity.User),
	}
}

// Repos returns repository views over the store.
func (s *Store) Repos() *repository.Repos {
	return &repository.Repos{
		Bookings:            &BookingRepo{s: s},
		Jobs:                &JobRepo{s: s},
		SanitisationRecords: &SanitisationRecordRepo{s: s},
		GradingRecords:      &GradingRecordRepo{s: s},
		Commissions:         &CommissionRepo{s: s},
		Invoices:            &InvoiceRepo{s: s},
	}
}

// Bookings returns the booking repository view.
func (s *Store) Bookings() *BookingRepo { return &BookingRepo{s: s} }

// Jobs returns the job repository view.
func (s *Store) Jobs() *JobRepo { return &JobRepo{s: s} }

// SanitisationRecords returns the sanitisation record repository view.
func (s *Store) SanitisationRecords() *SanitisationRecordRepo {
	return &SanitisationRecordRepo{s: s}
}

// GradingRecords returns the grading record repository view.
func (s *Store) GradingRecords() *GradingRecordRepo { return &GradingRecordRepo{s: s} }

// Commissions returns the commission repository view.
func (s *Store) Commissions() *CommissionRepo { return &CommissionRepo{s: s} }

// Invoices returns the invoice repository view.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }

// Users returns the user repository view.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner serializes callbacks with a dedicated mutex, which gives the same
// mutual exclusion the row locks give on PostgreSQL. It does not roll back:
// callbacks that fail after a write leave the write in place, so tests that
// exercise failure paths should fail before mutating.
type TxRunner struct {
	mu    sync.Mutex
	store *Store
}

// NewTxRunner builds the runner on the store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

// Run executes fn under the runner's lock with repository views over the store.
func (t *TxRunner) Run(_ context.Context, fn func(r *repository.Repos) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.store.Repos())
}

func copyBooking(b *entity.Booking) *entity.Booking {
	cp := *b
	cp.AssetItems = append([]entity.AssetItem(nil), b.AssetItems...)
	cp.ScheduledDate = copyTime(b.ScheduledDate)
	cp.ScheduledAt = copyTime(b.ScheduledAt)
	cp.CollectedAt = copyTime(b.CollectedAt)
	cp.SanitisedAt = copyTime(b.SanitisedAt)
	cp.GradedAt = copyTime(b.GradedAt)
	cp.CompletedAt = copyTime(b.CompletedAt)
	cp.CancelledAt = copyTime(b.CancelledAt)
	return &cp
}

func copyJob(j *entity.Job) *entity.Job {
	cp := *j
	cp.AssetItems = append([]entity.AssetItem(nil), j.AssetItems...)
	cp.PhotoKeys = append([]string(nil), j.PhotoKeys...)
	cp.SealNumbers = append([]string(nil), j.SealNumbers...)
	cp.CompletedDate = copyTime(j.CompletedDate)
	return &cp
}

func copyCommission(c *entity.Commission) *entity.Commission {
	cp := *c
	cp.PaidAt = copyTime(c.PaidAt)
	return &cp
}

func copyInvoice(inv *entity.Invoice) *entity.Invoice {
	cp := *inv
	cp.Lines = append([]entity.InvoiceLine(nil), inv.Lines...)
	cp.PaidAt = copyTime(inv.PaidAt)
	return &cp
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
