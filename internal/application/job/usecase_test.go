package job_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/application/job"
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/infrastructure/memory"
	"github.com/ecotrace/itad-api/pkg/logger"
)

func fixture(t *testing.T) (*job.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := job.NewUseCase(memory.NewTxRunner(store), store.Jobs(), store.Bookings(), logger.Nop())
	return uc, store
}

// seed creates a scheduled booking with its routed job, linked both ways.
func seed(t *testing.T, store *memory.Store) (*entity.Booking, *entity.Job) {
	t.Helper()
	ctx := context.Background()
	b := &entity.Booking{
		ID:            "bkg-1",
		BookingNumber: "BK-1",
		ClientID:      "client-1",
		ClientName:    "Acme Corp",
		Status:        entity.BookingScheduled,
		JobID:         "job-1",
		DriverID:      "driver-1",
		AssetItems:    []entity.AssetItem{{CategoryID: "laptop", Quantity: 3}},
	}
	j := &entity.Job{
		ID:        "job-1",
		JobNumber: "JOB-1",
		BookingID: b.ID,
		Status:    entity.JobRouted,
		DriverID:  "driver-1",
	}
	require.NoError(t, store.Bookings().Create(ctx, b))
	require.NoError(t, store.Jobs().Create(ctx, j))
	return b, j
}

func TestUpdateStatus_DriverProgression(t *testing.T) {
	uc, store := fixture(t)
	ctx := context.Background()
	_, j := seed(t, store)

	for _, target := range []entity.JobStatus{
		entity.JobEnRoute, entity.JobArrived, entity.JobCollected, entity.JobWarehouse,
	} {
		out, err := uc.UpdateStatus(ctx, j.ID, target, "driver-1")
		require.NoError(t, err, "→ %s", target)
		assert.Equal(t, string(target), out.Status)
	}
}

func TestUpdateStatus_BookedShortcut(t *testing.T) {
	uc, store := fixture(t)
	ctx := context.Background()
	_, j := seed(t, store)
	j.Status = entity.JobBooked
	require.NoError(t, store.Jobs().Update(ctx, j))

	out, err := uc.UpdateStatus(ctx, j.ID, entity.JobEnRoute, "driver-1")
	require.NoError(t, err, "direct-access drivers may skip routing")
	assert.Equal(t, "en-route", out.Status)
}

func TestUpdateStatus_IdempotentRepeat(t *testing.T) {
	uc, store := fixture(t)
	ctx := context.Background()
	_, j := seed(t, store)

	out, err := uc.UpdateStatus(ctx, j.ID, entity.JobRouted, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, "routed", out.Status)
}

func TestUpdateStatus_CascadeOnlyStatusRejected(t *testing.T) {
	uc, store := fixture(t)
	_, j := seed(t, store)

	_, err := uc.UpdateStatus(context.Background(), j.ID, entity.JobSanitised, "driver-1")
	te, ok := domain.AsTransitionError(err)
	require.True(t, ok, "sanitised is cascade-only")
	assert.Equal(t, "routed", te.Current)
}

func TestMarkCollected_SyncsBooking(t *testing.T) {
	uc, store := fixture(t)
	ctx := context.Background()
	b, j := seed(t, store)

	for _, target := range []entity.JobStatus{entity.JobEnRoute, entity.JobArrived} {
		_, err := uc.UpdateStatus(ctx, j.ID, target, "driver-1")
		require.NoError(t, err)
	}

	out, err := uc.MarkCollected(ctx, j.ID, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, "collected", out.Status)

	got, err := store.Bookings().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCollected, got.Status, "reverse cascade must pull the booking along")
	assert.NotNil(t, got.CollectedAt)
}

func TestMarkCollected_BookingAheadIsSkipped(t *testing.T) {
	uc, store := fixture(t)
	ctx := context.Background()
	b, j := seed(t, store)

	// Booking already moved past scheduled by an admin.
	b.Status = entity.BookingCollected
	require.NoError(t, store.Bookings().Update(ctx, b))

	for _, target := range []entity.JobStatus{entity.JobEnRoute, entity.JobArrived} {
		_, err := uc.UpdateStatus(ctx, j.ID, target, "driver-1")
		require.NoError(t, err)
	}
	_, err := uc.MarkCollected(ctx, j.ID, "driver-1")
	require.NoError(t, err, "job collection must not fail because the booking is ahead")

	got, _ := store.Bookings().GetByID(ctx, b.ID)
	assert.Equal(t, entity.BookingCollected, got.Status)
}

func TestAttachEvidence_Appends(t *testing.T) {
	uc, store := fixture(t)
	ctx := context.Background()
	_, j := seed(t, store)

	_, err := uc.AttachEvidence(ctx, j.ID, dto.AttachEvidenceRequest{
		PhotoKeys:   []string{"p1.jpg"},
		SealNumbers: []string{"SEAL-1"},
	})
	require.NoError(t, err)

	out, err := uc.AttachEvidence(ctx, j.ID, dto.AttachEvidenceRequest{
		PhotoKeys:    []string{"p2.jpg"},
		SignatureKey: "sig.png",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1.jpg", "p2.jpg"}, out.PhotoKeys)
	assert.Equal(t, []string{"SEAL-1"}, out.SealNumbers)
	assert.Equal(t, "sig.png", out.SignatureKey)
}

func TestListByDriver(t *testing.T) {
	uc, store := fixture(t)
	ctx := context.Background()
	seed(t, store)

	mine, err := uc.ListByDriver(ctx, "driver-1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	other, err := uc.ListByDriver(ctx, "driver-2", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGetByID_NotFound(t *testing.T) {
	uc, _ := fixture(t)
	_, err := uc.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
