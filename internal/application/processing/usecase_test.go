package processing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrace/itad-api/internal/application/billing"
	"github.com/ecotrace/itad-api/internal/application/booking"
	"github.com/ecotrace/itad-api/internal/application/dto"
	"github.com/ecotrace/itad-api/internal/application/processing"
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/infrastructure/memory"
	"github.com/ecotrace/itad-api/pkg/logger"
)

// fixture wires processing over a shared memory store, with the real booking
// use case serving the resync sweep.
func fixture(t *testing.T) (*processing.UseCase, *booking.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	reactive := billing.NewReactiveCreator(store.Commissions(), store.Invoices(), log)
	bookingUC := booking.NewUseCase(
		memory.NewTxRunner(store), store.Bookings(), store.Jobs(), store.Users(), reactive, log)
	uc := processing.NewUseCase(
		store.Bookings(), store.SanitisationRecords(), store.GradingRecords(), bookingUC, log)
	return uc, bookingUC, store
}

// collectedBooking seeds a booking already at `collected` with three distinct
// asset categories.
func collectedBooking(t *testing.T, store *memory.Store) *entity.Booking {
	t.Helper()
	b := &entity.Booking{
		ID:            "bkg-1",
		BookingNumber: "BK-1",
		ClientID:      "client-1",
		ClientName:    "Acme Corp",
		Status:        entity.BookingCollected,
		AssetItems: []entity.AssetItem{
			{CategoryID: "laptop", Quantity: 5},
			{CategoryID: "monitor", Quantity: 2},
			{CategoryID: "server", Quantity: 1},
		},
	}
	require.NoError(t, store.Bookings().Create(context.Background(), b))
	return b
}

func TestRecordSanitisation_CompletenessCascade(t *testing.T) {
	uc, _, store := fixture(t)
	ctx := context.Background()
	b := collectedBooking(t, store)

	record := func(cat string) {
		_, err := uc.RecordSanitisation(ctx, b.ID,
			dto.RecordSanitisationRequest{AssetCategoryID: cat, Method: "nist-800-88-purge"}, "op-1")
		require.NoError(t, err)
	}

	record("laptop")
	got, _ := store.Bookings().GetByID(ctx, b.ID)
	assert.Equal(t, entity.BookingCollected, got.Status, "1 of 3 categories covered")

	record("monitor")
	got, _ = store.Bookings().GetByID(ctx, b.ID)
	assert.Equal(t, entity.BookingCollected, got.Status, "2 of 3 categories covered")

	record("server")
	got, _ = store.Bookings().GetByID(ctx, b.ID)
	assert.Equal(t, entity.BookingSanitised, got.Status, "full coverage must advance the booking")
	assert.NotNil(t, got.SanitisedAt)
}

func TestRecordSanitisation_DuplicateCategoryAllowed(t *testing.T) {
	uc, _, store := fixture(t)
	ctx := context.Background()
	b := collectedBooking(t, store)

	for i := 0; i < 3; i++ {
		_, err := uc.RecordSanitisation(ctx, b.ID,
			dto.RecordSanitisationRequest{AssetCategoryID: "laptop", Method: "shred"}, "op-1")
		require.NoError(t, err)
	}
	recs, err := uc.ListSanitisation(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, recs, 3, "evidence is append-only")

	got, _ := store.Bookings().GetByID(ctx, b.ID)
	assert.Equal(t, entity.BookingCollected, got.Status, "repeats of one category never cover the rest")
}

func TestRecordSanitisation_WrongBookingStateKeepsRecord(t *testing.T) {
	uc, _, store := fixture(t)
	ctx := context.Background()
	b := collectedBooking(t, store)
	b.Status = entity.BookingScheduled
	require.NoError(t, store.Bookings().Update(ctx, b))

	out, err := uc.RecordSanitisation(ctx, b.ID,
		dto.RecordSanitisationRequest{AssetCategoryID: "laptop", Method: "shred"}, "op-1")
	require.NoError(t, err, "recording must succeed even when the cascade cannot fire")
	assert.NotEmpty(t, out.ID)

	got, _ := store.Bookings().GetByID(ctx, b.ID)
	assert.Equal(t, entity.BookingScheduled, got.Status, "silent skip: booking not in collected")
}

func TestRecordGrading_ComputesResaleValueAndCascades(t *testing.T) {
	uc, _, store := fixture(t)
	ctx := context.Background()
	b := collectedBooking(t, store)
	b.Status = entity.BookingSanitised
	require.NoError(t, store.Bookings().Update(ctx, b))

	out, err := uc.RecordGrading(ctx, b.ID,
		dto.RecordGradingRequest{AssetCategoryID: "server", Grade: "B"}, "op-2")
	require.NoError(t, err)
	assert.True(t, out.ResaleValue.Equal(decimal.NewFromInt(245)), "resale = %s", out.ResaleValue)

	for _, cat := range []string{"laptop", "monitor"} {
		_, err := uc.RecordGrading(ctx, b.ID,
			dto.RecordGradingRequest{AssetCategoryID: cat, Grade: "A"}, "op-2")
		require.NoError(t, err)
	}

	got, _ := store.Bookings().GetByID(ctx, b.ID)
	assert.Equal(t, entity.BookingGraded, got.Status)
	assert.NotNil(t, got.GradedAt)
}

func TestRecordGrading_UnknownGradeRejected(t *testing.T) {
	uc, _, store := fixture(t)
	b := collectedBooking(t, store)

	_, err := uc.RecordGrading(context.Background(), b.ID,
		dto.RecordGradingRequest{AssetCategoryID: "laptop", Grade: "E"}, "op-2")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecord_UnknownBooking(t *testing.T) {
	uc, _, _ := fixture(t)
	ctx := context.Background()

	_, err := uc.RecordSanitisation(ctx, "ghost",
		dto.RecordSanitisationRequest{AssetCategoryID: "laptop", Method: "shred"}, "op-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RecordGrading(ctx, "ghost",
		dto.RecordGradingRequest{AssetCategoryID: "laptop", Grade: "A"}, "op-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerifyRecords(t *testing.T) {
	uc, _, store := fixture(t)
	ctx := context.Background()
	b := collectedBooking(t, store)

	rec, err := uc.RecordSanitisation(ctx, b.ID,
		dto.RecordSanitisationRequest{AssetCategoryID: "laptop", Method: "degauss"}, "op-1")
	require.NoError(t, err)
	assert.False(t, rec.Verified)

	verified, err := uc.VerifySanitisation(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	_, err = uc.VerifySanitisation(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// failingResync always errors, standing in for a resync sweep that dies
// mid-flight.
type failingResync struct{}

func (failingResync) Resync(context.Context, string) (*dto.BookingResponse, error) {
	return nil, errors.New("sweep unavailable")
}

func TestRecordSanitisation_CascadeFailureIsNonFatal(t *testing.T) {
	store := memory.NewStore()
	uc := processing.NewUseCase(
		store.Bookings(), store.SanitisationRecords(), store.GradingRecords(),
		failingResync{}, logger.Nop())
	ctx := context.Background()
	b := collectedBooking(t, store)

	out, err := uc.RecordSanitisation(ctx, b.ID,
		dto.RecordSanitisationRequest{AssetCategoryID: "laptop", Method: "shred"}, "op-1")
	require.NoError(t, err, "cascade failure must not surface")

	recs, err := uc.ListSanitisation(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, out.ID, recs[0].ID, "record kept despite the failed cascade")
}
