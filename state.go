package pavtv

import "time"

// ConnectionState represents the derived health of the viewer connection.
//
// ConnectionState is a string type with exactly three values:
// [StateDisconnected], [StateUnresponsive], and [StateConnected]. Using a
// string type allows for easy JSON serialization and human-readable
// logging while maintaining type safety through the defined constants.
// Only equality is meaningful; the states are not ordered.
type ConnectionState string

const (
	// StateDisconnected indicates the viewer is not running, not
	// reachable, or has been silent for at least the disconnected
	// threshold.
	StateDisconnected ConnectionState = "disconnected"

	// StateUnresponsive indicates the viewer process is alive but its
	// API has not returned a 2xx for at least the unresponsive
	// threshold. This typically happens while a large replay loads.
	StateUnresponsive ConnectionState = "unresponsive"

	// StateConnected indicates the API responded recently.
	StateConnected ConnectionState = "connected"
)

// String returns the string representation of the state.
// This implements the fmt.Stringer interface.
func (s ConnectionState) String() string {
	return string(s)
}

// deriveInput bundles everything the state ladder needs. Kept as a value
// type so deriveState stays a pure function that tests can drive directly.
type deriveInput struct {
	hasResponse    bool
	age            time.Duration
	shouldRun      bool
	processRunning bool
	unresponsive   time.Duration
	disconnected   time.Duration
}

// deriveState computes the connection state ladder:
//
//	no response yet            -> disconnected
//	engine not running         -> disconnected
//	viewer process not running -> disconnected
//	age >= disconnected        -> disconnected
//	age >= unresponsive        -> unresponsive
//	otherwise                  -> connected
//
// The DIT invariant disconnected > unresponsive keeps the ladder
// well-ordered.
func deriveState(in deriveInput) ConnectionState {
	if !in.hasResponse {
		return StateDisconnected
	}
	if !in.shouldRun {
		return StateDisconnected
	}
	if !in.processRunning {
		return StateDisconnected
	}
	if in.age >= in.disconnected {
		return StateDisconnected
	}
	if in.age >= in.unresponsive {
		return StateUnresponsive
	}
	return StateConnected
}
