package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrace/itad-api/internal/application/billing"
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/infrastructure/memory"
	"github.com/ecotrace/itad-api/pkg/logger"
)

func seedCommission(t *testing.T, store *memory.Store) *entity.Commission {
	t.Helper()
	c := &entity.Commission{
		ID:                "com-1",
		BookingID:         "bkg-1",
		ResellerID:        "reseller-1",
		ResellerName:      "GreenLoop",
		CommissionPercent: decimal.NewFromInt(10),
		BaseValue:         decimal.NewFromInt(500),
		CommissionAmount:  decimal.NewFromInt(50),
		Status:            entity.CommissionPending,
		Period:            "2026-08",
	}
	created, err := store.Commissions().Create(context.Background(), c)
	require.NoError(t, err)
	require.True(t, created)
	return c
}

func seedInvoice(t *testing.T, store *memory.Store, status entity.InvoiceStatus) *entity.Invoice {
	t.Helper()
	now := time.Now()
	inv := &entity.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-1",
		BookingID:     "bkg-1",
		ClientID:      "client-1",
		ClientName:    "Acme Corp",
		Subtotal:      decimal.NewFromInt(500),
		Tax:           decimal.NewFromInt(100),
		Total:         decimal.NewFromInt(600),
		IssueDate:     now,
		DueDate:       now.AddDate(0, 0, 30),
		Status:        status,
	}
	created, err := store.Invoices().Create(context.Background(), inv)
	require.NoError(t, err)
	require.True(t, created)
	return inv
}

func TestCommissionUpdateStatus_LinearProgression(t *testing.T) {
	store := memory.NewStore()
	uc := billing.NewCommissionUseCase(memory.NewTxRunner(store), store.Commissions(), logger.Nop())
	ctx := context.Background()
	c := seedCommission(t, store)

	out, err := uc.UpdateStatus(ctx, c.ID, entity.CommissionApproved)
	require.NoError(t, err)
	assert.Equal(t, "approved", out.Status)
	assert.Nil(t, out.PaidAt)

	out, err = uc.UpdateStatus(ctx, c.ID, entity.CommissionPaid)
	require.NoError(t, err)
	assert.Equal(t, "paid", out.Status)
	require.NotNil(t, out.PaidAt)
}

func TestCommissionUpdateStatus_NoSkipNoRevert(t *testing.T) {
	store := memory.NewStore()
	uc := billing.NewCommissionUseCase(memory.NewTxRunner(store), store.Commissions(), logger.Nop())
	ctx := context.Background()
	c := seedCommission(t, store)

	_, err := uc.UpdateStatus(ctx, c.ID, entity.CommissionPaid)
	te, ok := domain.AsTransitionError(err)
	require.True(t, ok, "pending→paid skips approval")
	assert.Equal(t, "pending", te.Current)

	_, err = uc.UpdateStatus(ctx, c.ID, entity.CommissionApproved)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, c.ID, entity.CommissionPending)
	_, ok = domain.AsTransitionError(err)
	assert.True(t, ok, "reverts are illegal")
}

func TestCommissionUpdateStatus_PaidAtStampedOnce(t *testing.T) {
	store := memory.NewStore()
	uc := billing.NewCommissionUseCase(memory.NewTxRunner(store), store.Commissions(), logger.Nop())
	ctx := context.Background()
	c := seedCommission(t, store)

	_, err := uc.UpdateStatus(ctx, c.ID, entity.CommissionApproved)
	require.NoError(t, err)
	first, err := uc.UpdateStatus(ctx, c.ID, entity.CommissionPaid)
	require.NoError(t, err)
	require.NotNil(t, first.PaidAt)

	time.Sleep(5 * time.Millisecond)
	again, err := uc.UpdateStatus(ctx, c.ID, entity.CommissionPaid)
	require.NoError(t, err, "repeating the current status is a no-op")
	assert.True(t, again.PaidAt.Equal(*first.PaidAt), "repeat must not re-stamp paidAt")
}

func TestCommissionUpdateStatus_Errors(t *testing.T) {
	store := memory.NewStore()
	uc := billing.NewCommissionUseCase(memory.NewTxRunner(store), store.Commissions(), logger.Nop())
	ctx := context.Background()

	_, err := uc.UpdateStatus(ctx, "ghost", entity.CommissionApproved)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	c := seedCommission(t, store)
	_, err = uc.UpdateStatus(ctx, c.ID, entity.CommissionStatus("settled"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceUpdateStatus_Progression(t *testing.T) {
	store := memory.NewStore()
	uc := billing.NewInvoiceUseCase(memory.NewTxRunner(store), store.Invoices(), logger.Nop())
	ctx := context.Background()
	inv := seedInvoice(t, store, entity.InvoiceDraft)

	out, err := uc.UpdateStatus(ctx, inv.ID, entity.InvoiceSent)
	require.NoError(t, err)
	assert.Equal(t, "sent", out.Status)

	out, err = uc.UpdateStatus(ctx, inv.ID, entity.InvoiceOverdue)
	require.NoError(t, err)
	assert.Equal(t, "overdue", out.Status)

	out, err = uc.UpdateStatus(ctx, inv.ID, entity.InvoicePaid)
	require.NoError(t, err, "overdue invoices can still be settled")
	assert.Equal(t, "paid", out.Status)
	assert.NotNil(t, out.PaidAt)
}

func TestInvoiceUpdateStatus_DraftCannotSkipToPaid(t *testing.T) {
	store := memory.NewStore()
	uc := billing.NewInvoiceUseCase(memory.NewTxRunner(store), store.Invoices(), logger.Nop())
	inv := seedInvoice(t, store, entity.InvoiceDraft)

	_, err := uc.UpdateStatus(context.Background(), inv.ID, entity.InvoicePaid)
	te, ok := domain.AsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, "draft", te.Current)
	assert.Contains(t, te.Allowed, "sent")
}

func TestInvoiceUpdateStatus_CancelEscape(t *testing.T) {
	store := memory.NewStore()
	uc := billing.NewInvoiceUseCase(memory.NewTxRunner(store), store.Invoices(), logger.Nop())
	ctx := context.Background()
	inv := seedInvoice(t, store, entity.InvoiceOverdue)

	out, err := uc.UpdateStatus(ctx, inv.ID, entity.InvoiceCancelled)
	require.NoError(t, err, "cancel is reachable from any live status")
	assert.Equal(t, "cancelled", out.Status)

	_, err = uc.UpdateStatus(ctx, inv.ID, entity.InvoiceSent)
	_, ok := domain.AsTransitionError(err)
	assert.True(t, ok, "cancelled is terminal")

	again, err := uc.UpdateStatus(ctx, inv.ID, entity.InvoiceCancelled)
	require.NoError(t, err, "repeating cancel is a no-op")
	assert.Equal(t, "cancelled", again.Status)
}
