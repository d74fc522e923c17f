package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")
)

// TransitionError reports an illegal status transition. It carries the current
// status and the allowed next status(es) so callers can self-correct without guessing.
type TransitionError struct {
	Entity    string   // "booking", "job", "commission", "invoice"
	Current   string   // status the entity is in
	Requested string   // status that was requested
	Allowed   []string // statuses reachable from Current
}

func (e *TransitionError) Error() string {
	allowed := "none (terminal)"
	if len(e.Allowed) > 0 {
		allowed = strings.Join(e.Allowed, ", ")
	}
	return fmt.Sprintf("%s: cannot transition from %q to %q (allowed: %s)", e.Entity, e.Current, e.Requested, allowed)
}

// AsTransitionError unwraps err into a *TransitionError if it is one.
func AsTransitionError(err error) (*TransitionError, bool) {
	var te *TransitionError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
