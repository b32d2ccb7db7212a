package status

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// State is the state of a commit status as GitHub reports it.
type State string

const (
	StatePending State = "pending"
	StateSuccess State = "success"
	StateError   State = "error"
	StateFailure State = "failure"
)

// combinedOrder ranks states for the combined status, most severe first.
var combinedOrder = []State{StatePending, StateError, StateFailure, StateSuccess}

var (
	ErrInvalidState = errors.New("invalid commit status state")
	// ErrNoStatus is returned when a commit has no status for a context
	ErrNoStatus = errors.New("no commit status")
)

// ParseState validates s, ignoring case and surrounding space
func ParseState(s string) (State, error) {
	state := State(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range combinedOrder {
		if state == known {
			return state, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want pending, success, error or failure)", ErrInvalidState, s)
}

// Status is one status posted to a commit.
type Status struct {
	Context     string
	State       State
	Description string
	TargetURL   string
	UpdatedAt   time.Time
}

// Latest keeps the most recently updated status of every context. Statuses
// cannot be edited on GitHub, so a context accumulates one entry per post.
func Latest(statuses []Status) map[string]Status {
	latest := make(map[string]Status, len(statuses))
	for _, s := range statuses {
		current, ok := latest[s.Context]
		if !ok || s.UpdatedAt.After(current.UpdatedAt) {
			latest[s.Context] = s
		}
	}
	return latest
}

// Current returns the state of context, or false when nothing was posted
// for it.
func Current(statuses []Status, context string) (State, bool) {
	s, ok := Latest(statuses)[context]
	if !ok {
		return "", false
	}
	return s.State, true
}

// Combined folds the current state of every context into one. Any pending
// context makes the commit pending, then error, then failure.
func Combined(statuses []Status) (State, bool) {
	present := make(map[State]bool)
	for _, s := range Latest(statuses) {
		present[s.State] = true
	}
	for _, state := range combinedOrder {
		if present[state] {
			return state, true
		}
	}
	return "", false
}
