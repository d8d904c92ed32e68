package checkout

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

type State int

const (
	StateStarted State = iota
	StateSnapshotLoaded
	StateAssembling
	StatePaymentSessionCreated
	StateCommitted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateStarted:
		return "started"
	case StateSnapshotLoaded:
		return "snapshot_loaded"
	case StateAssembling:
		return "assembling"
	case StatePaymentSessionCreated:
		return "payment_session_created"
	case StateCommitted:
		return "committed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

func (s State) Terminal() bool {
	return s == StateCommitted || s == StateAborted
}

var errIllegalTransition = errors.New("illegal checkout state transition")

// CanTransitionTo reports whether the workflow may move from s to next.
// Aborted is reachable from every non-terminal state.
func CanTransitionTo(s, next State) bool {
	if s.Terminal() {
		return false
	}
	if next == StateAborted {
		return true
	}
	return next == s+1
}

// run tracks one checkout attempt.
type run struct {
	state   State
	userID  uuid.UUID
	orderID uuid.UUID
	logger  *slog.Logger
}

func newRun(logger *slog.Logger, userID uuid.UUID) *run {
	return &run{
		state:  StateStarted,
		userID: userID,
		logger: logger,
	}
}

func (r *run) advance(next State) error {
	if !CanTransitionTo(r.state, next) {
		return errIllegalTransition
	}

	r.logger.Debug("checkout state changed",
		"user_id", r.userID,
		"order_id", r.orderID,
		"from", r.state.String(),
		"to", next.String(),
	)
	r.state = next

	return nil
}

// abort records the terminal failure, remembering the state it failed in.
func (r *run) abort() State {
	failedIn := r.state
	if !r.state.Terminal() {
		r.state = StateAborted
	}
	return failedIn
}
