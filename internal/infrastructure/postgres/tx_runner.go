package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecotrace/itad-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction, handing the
// callback repositories bound to that transaction. The booking repositories'
// GetForUpdate inside the callback gives the per-booking serialization the
// lifecycle cascades rely on.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with tx-bound repos, then commits.
// When fn errors the transaction is rolled back.
func (t *TxRunner) Run(ctx context.Context, fn func(r *repository.Repos) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := &repository.Repos{
		Bookings:            NewBookingRepository(tx),
		Jobs:                NewJobRepository(tx),
		SanitisationRecords: NewSanitisationRecordRepository(tx),
		GradingRecords:      NewGradingRecordRepository(tx),
		Commissions:         NewCommissionRepository(tx),
		Invoices:            NewInvoiceRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
