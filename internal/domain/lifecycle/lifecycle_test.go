package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
	"github.com/ecotrace/itad-api/internal/domain/lifecycle"
)

func TestCheckBooking_LinearProgression(t *testing.T) {
	steps := []struct {
		from, to entity.BookingStatus
	}{
		{entity.BookingCreated, entity.BookingScheduled},
		{entity.BookingScheduled, entity.BookingCollected},
		{entity.BookingCollected, entity.BookingSanitised},
		{entity.BookingSanitised, entity.BookingGraded},
		{entity.BookingGraded, entity.BookingCompleted},
	}
	for _, s := range steps {
		noop, err := lifecycle.CheckBooking(s.from, s.to)
		assert.NoError(t, err, "%s → %s must be legal", s.from, s.to)
		assert.False(t, noop)
	}
}

func TestCheckBooking_NoSkips(t *testing.T) {
	cases := []struct {
		from, to entity.BookingStatus
	}{
		{entity.BookingCreated, entity.BookingCollected},
		{entity.BookingCreated, entity.BookingCompleted},
		{entity.BookingScheduled, entity.BookingSanitised},
		{entity.BookingCollected, entity.BookingGraded},
		// backwards
		{entity.BookingCollected, entity.BookingScheduled},
		{entity.BookingGraded, entity.BookingSanitised},
	}
	for _, c := range cases {
		_, err := lifecycle.CheckBooking(c.from, c.to)
		te, ok := domain.AsTransitionError(err)
		require.True(t, ok, "%s → %s must be rejected", c.from, c.to)
		assert.Equal(t, "booking", te.Entity)
		assert.Equal(t, string(c.from), te.Current)
	}
}

func TestCheckBooking_SameStatusIsIdempotentNoop(t *testing.T) {
	for _, s := range []entity.BookingStatus{
		entity.BookingCreated, entity.BookingCollected,
		entity.BookingCompleted, entity.BookingCancelled,
	} {
		noop, err := lifecycle.CheckBooking(s, s)
		assert.NoError(t, err)
		assert.True(t, noop, "re-requesting %s must be a no-op", s)
	}
}

func TestCheckBooking_CancelWindow(t *testing.T) {
	// Cancellable only before collection.
	for _, s := range []entity.BookingStatus{entity.BookingCreated, entity.BookingScheduled} {
		noop, err := lifecycle.CheckBooking(s, entity.BookingCancelled)
		assert.NoError(t, err, "cancel from %s must be legal", s)
		assert.False(t, noop)
	}
	for _, s := range []entity.BookingStatus{
		entity.BookingCollected, entity.BookingSanitised,
		entity.BookingGraded, entity.BookingCompleted,
	} {
		_, err := lifecycle.CheckBooking(s, entity.BookingCancelled)
		assert.Error(t, err, "cancel from %s must be rejected", s)
	}
}

func TestCheckBooking_TerminalStatuses(t *testing.T) {
	for _, terminal := range []entity.BookingStatus{entity.BookingCompleted, entity.BookingCancelled} {
		_, err := lifecycle.CheckBooking(terminal, entity.BookingScheduled)
		te, ok := domain.AsTransitionError(err)
		require.True(t, ok)
		assert.Empty(t, te.Allowed, "%s must have no exits", terminal)
	}
}

func TestBookingAllowed(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"scheduled", "cancelled"},
		lifecycle.BookingAllowed(entity.BookingCreated))
	assert.ElementsMatch(t,
		[]string{"sanitised"},
		lifecycle.BookingAllowed(entity.BookingCollected))
	assert.Empty(t, lifecycle.BookingAllowed(entity.BookingCompleted))
}

func TestCheckDriverJob_Progression(t *testing.T) {
	steps := []struct {
		from, to entity.JobStatus
	}{
		{entity.JobBooked, entity.JobRouted},
		{entity.JobRouted, entity.JobEnRoute},
		{entity.JobEnRoute, entity.JobArrived},
		{entity.JobArrived, entity.JobCollected},
		{entity.JobCollected, entity.JobWarehouse},
	}
	for _, s := range steps {
		noop, err := lifecycle.CheckDriverJob(s.from, s.to)
		assert.NoError(t, err, "%s → %s must be legal", s.from, s.to)
		assert.False(t, noop)
	}
}

func TestCheckDriverJob_BookedShortcut(t *testing.T) {
	// Drivers with direct access may skip routing.
	noop, err := lifecycle.CheckDriverJob(entity.JobBooked, entity.JobEnRoute)
	assert.NoError(t, err)
	assert.False(t, noop)
}

func TestCheckDriverJob_CascadeOnlyStatuses(t *testing.T) {
	// warehouse onward is owned by the booking cascade, not drivers.
	for _, c := range []struct {
		from, to entity.JobStatus
	}{
		{entity.JobWarehouse, entity.JobSanitised},
		{entity.JobSanitised, entity.JobGraded},
		{entity.JobGraded, entity.JobFinalised},
	} {
		_, err := lifecycle.CheckDriverJob(c.from, c.to)
		te, ok := domain.AsTransitionError(err)
		require.True(t, ok, "%s → %s must be rejected for drivers", c.from, c.to)
		assert.Equal(t, "job", te.Entity)
	}
}

func TestCheckDriverJob_SameStatusIsIdempotentNoop(t *testing.T) {
	noop, err := lifecycle.CheckDriverJob(entity.JobCollected, entity.JobCollected)
	assert.NoError(t, err)
	assert.True(t, noop)
}

func TestCascadeForBooking(t *testing.T) {
	c, ok := lifecycle.CascadeForBooking(entity.BookingSanitised)
	require.True(t, ok)
	assert.Equal(t, entity.JobWarehouse, c.Require)
	assert.Equal(t, entity.JobSanitised, c.Target)
	assert.False(t, c.Final)

	c, ok = lifecycle.CascadeForBooking(entity.BookingCompleted)
	require.True(t, ok)
	assert.Equal(t, entity.JobGraded, c.Require)
	assert.Equal(t, entity.JobFinalised, c.Target)
	assert.True(t, c.Final)

	_, ok = lifecycle.CascadeForBooking(entity.BookingScheduled)
	assert.False(t, ok)
}

func TestCheckCommission(t *testing.T) {
	noop, err := lifecycle.CheckCommission(entity.CommissionPending, entity.CommissionApproved)
	assert.NoError(t, err)
	assert.False(t, noop)

	noop, err = lifecycle.CheckCommission(entity.CommissionApproved, entity.CommissionPaid)
	assert.NoError(t, err)
	assert.False(t, noop)

	// no skipping approval
	_, err = lifecycle.CheckCommission(entity.CommissionPending, entity.CommissionPaid)
	assert.Error(t, err)

	// no reverting
	_, err = lifecycle.CheckCommission(entity.CommissionPaid, entity.CommissionApproved)
	assert.Error(t, err)

	// idempotent terminal repeat
	noop, err = lifecycle.CheckCommission(entity.CommissionPaid, entity.CommissionPaid)
	assert.NoError(t, err)
	assert.True(t, noop)
}

func TestCheckInvoice(t *testing.T) {
	legal := []struct {
		from, to entity.InvoiceStatus
	}{
		{entity.InvoiceDraft, entity.InvoiceSent},
		{entity.InvoiceSent, entity.InvoicePaid},
		{entity.InvoiceSent, entity.InvoiceOverdue},
		{entity.InvoiceOverdue, entity.InvoicePaid},
	}
	for _, c := range legal {
		noop, err := lifecycle.CheckInvoice(c.from, c.to)
		assert.NoError(t, err, "%s → %s must be legal", c.from, c.to)
		assert.False(t, noop)
	}

	_, err := lifecycle.CheckInvoice(entity.InvoiceDraft, entity.InvoicePaid)
	assert.Error(t, err, "draft cannot jump straight to paid")
}

func TestCheckInvoice_CancelEscape(t *testing.T) {
	for _, s := range []entity.InvoiceStatus{
		entity.InvoiceDraft, entity.InvoiceSent,
		entity.InvoicePaid, entity.InvoiceOverdue,
	} {
		noop, err := lifecycle.CheckInvoice(s, entity.InvoiceCancelled)
		assert.NoError(t, err, "cancel from %s must be legal", s)
		assert.False(t, noop)
	}

	// cancelled is terminal; repeating it is a no-op, leaving it is not.
	noop, err := lifecycle.CheckInvoice(entity.InvoiceCancelled, entity.InvoiceCancelled)
	assert.NoError(t, err)
	assert.True(t, noop)

	_, err = lifecycle.CheckInvoice(entity.InvoiceCancelled, entity.InvoiceSent)
	assert.Error(t, err)
}

func TestCategoriesCovered(t *testing.T) {
	assert.True(t, lifecycle.CategoriesCovered(nil, nil))
	assert.True(t, lifecycle.CategoriesCovered([]string{"laptop"}, []string{"laptop"}))
	assert.True(t, lifecycle.CategoriesCovered(
		[]string{"laptop", "monitor"},
		[]string{"monitor", "laptop", "server"}))
	assert.False(t, lifecycle.CategoriesCovered(
		[]string{"laptop", "monitor", "server"},
		[]string{"laptop", "monitor"}))
}

func TestValidStatuses(t *testing.T) {
	assert.True(t, lifecycle.ValidBookingStatus(entity.BookingSanitised))
	assert.False(t, lifecycle.ValidBookingStatus("shipped"))
	assert.True(t, lifecycle.ValidJobStatus(entity.JobEnRoute))
	assert.False(t, lifecycle.ValidJobStatus("enroute"))
	assert.True(t, lifecycle.ValidCommissionStatus(entity.CommissionPending))
	assert.False(t, lifecycle.ValidCommissionStatus("open"))
	assert.True(t, lifecycle.ValidInvoiceStatus(entity.InvoiceOverdue))
	assert.False(t, lifecycle.ValidInvoiceStatus("void"))
}
