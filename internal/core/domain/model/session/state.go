package session

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// State represents the lifecycle state of a scanning session.
//
// State transitions:
//
//	Pending ──join──> Queued ──connect──> Connected ──end──> Ended
//	   │                │                     ▲
//	   └────connect─────┴─────────────────────┘
//	(connect is allowed from any non-ended state; end from any state)
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// Pending is the initial state: the session key exists, no device yet.
	Pending

	// Queued means a device has announced itself but is not yet authorized.
	Queued

	// Connected means the paired device is authorized to submit scans.
	Connected

	// Ended is the terminal state; ended sessions are removed from the
	// active set.
	Ended
)

// getStateStrings returns a map of State values to their string representations.
func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Queued:    "Queued",
		Connected: "Connected",
		Ended:     "Ended",
	}
}

// getValidStateStrings returns only the valid State values, for validation.
func getValidStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Pending:   "Pending",
		Queued:    "Queued",
		Connected: "Connected",
		Ended:     "Ended",
	}
}

// Validate checks if the State value is valid. Unknown (0) and out-of-range
// values are invalid. Used when reconstructing sessions from persistence.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid session state", s))
	}
	return nil
}

// String returns the human-readable name of the state; "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
