package lifecycle

import (
	"github.com/ecotrace/itad-api/internal/domain"
	"github.com/ecotrace/itad-api/internal/domain/entity"
)

// jobDriverTransitions are the edges a driver may take directly. booked has
// two legal exits: routed (normal dispatch) and en-route (drivers given
// direct access skip routing). Everything past warehouse is reachable only
// through the booking cascade.
var jobDriverTransitions = map[entity.JobStatus][]entity.JobStatus{
	entity.JobBooked:    {entity.JobRouted, entity.JobEnRoute},
	entity.JobRouted:    {entity.JobEnRoute},
	entity.JobEnRoute:   {entity.JobArrived},
	entity.JobArrived:   {entity.JobCollected},
	entity.JobCollected: {entity.JobWarehouse},
}

// CheckDriverJob validates a driver-initiated job transition. Re-requesting
// the current status is an idempotent no-op.
func CheckDriverJob(current, target entity.JobStatus) (noop bool, err error) {
	if target == current {
		return true, nil
	}
	for _, next := range jobDriverTransitions[current] {
		if next == target {
			return false, nil
		}
	}
	return false, &domain.TransitionError{
		Entity:    "job",
		Current:   string(current),
		Requested: string(target),
		Allowed:   JobDriverAllowed(current),
	}
}

// JobDriverAllowed returns the driver-settable statuses reachable from current.
func JobDriverAllowed(current entity.JobStatus) []string {
	nexts := jobDriverTransitions[current]
	out := make([]string, 0, len(nexts))
	for _, n := range nexts {
		out = append(out, string(n))
	}
	return out
}
