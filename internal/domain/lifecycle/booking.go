// Package lifecycle holds the pure transition tables for the four linked state
// machines (booking, job, commission, invoice) and the booking→job cascade
// table. No I/O: everything here is decidable from the statuses alone.
package lifecycle

import (
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// bookingNext is the strict linear booking table: each status has exactly one
// allowed forward transition. completed and cancelled are terminal.
var bookingNext = map[entity.BookingStatus]entity.BookingStatus{
	entity.BookingCreated:   entity.BookingScheduled,
	entity.BookingScheduled: entity.BookingCollected,
	entity.BookingCollected: entity.BookingSanitised,
	entity.BookingSanitised: entity.BookingGraded,
	entity.BookingGraded:    entity.BookingCompleted,
}

// bookingCancellable lists the statuses a booking can be cancelled from.
var bookingCancellable = map[entity.BookingStatus]bool{
	entity.BookingCreated:   true,
	entity.BookingScheduled: true,
}

// CheckBooking validates a requested booking transition. Re-requesting the
// current status is an idempotent no-op (noop=true, nil error). Anything not
// in the table yields a *domain.TransitionError naming current and allowed.
func CheckBooking(current, target entity.BookingStatus) (noop bool, err error) {
	if target == current {
		return true, nil
	}
	if target == entity.BookingCancelled && bookingCancellable[current] {
		return false, nil
	}
	if next, ok := bookingNext[current]; ok && next == target {
		return false, nil
	}
	return false, &domain.TransitionError{
		Entity:    "booking",
		Current:   string(current),
		Requested: string(target),
		Allowed:   BookingAllowed(current),
	}
}

// BookingAllowed returns the statuses reachable from current (excluding the
// idempotent same-status request).
func BookingAllowed(current entity.BookingStatus) []string {
	var out []string
	if next, ok := bookingNext[current]; ok {
		out = append(out, string(next))
	}
	if bookingCancellable[current] {
		out = append(out, string(entity.BookingCancelled))
	}
	return out
}

// JobCascade is one row of the booking→job sync table: when the booking
// reaches a status, the linked job advances too, but only if it is currently
// in the required state. Otherwise the cascade is silently skipped.
type JobCascade struct {
	Require entity.JobStatus
	Target  entity.JobStatus
	Final   bool // stamp the job completion date
}

var bookingJobCascades = map[entity.BookingStatus]JobCascade{
	entity.BookingSanitised: {Require: entity.JobWarehouse, Target: entity.JobSanitised},
	entity.BookingGraded:    {Require: entity.JobSanitised, Target: entity.JobGraded},
	entity.BookingCompleted: {Require: entity.JobGraded, Target: entity.JobFinalised, Final: true},
}

// CascadeForBooking returns the job cascade triggered by a booking reaching
// status, if any.
func CascadeForBooking(status entity.BookingStatus) (JobCascade, bool) {
	c, ok := bookingJobCascades[status]
	return c, ok
}
