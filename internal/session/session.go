// Package session owns the lifecycle of one authenticated connection to the
// messaging network: connect, reconnect on transient drops, terminal logout
// detection, and readiness signaling for the batch loop.
package session

import "errors"

// ErrLoggedOut is returned when the session was explicitly logged out on the
// network side. The credential area must be discarded and the session
// re-paired; no reconnect is attempted.
var ErrLoggedOut = errors.New("session logged out")

// ErrNotReady is returned by operations that require an open connection.
var ErrNotReady = errors.New("session not ready")

// State is the connection lifecycle state of a session.
type State int

const (
	// StateConnecting means a connection attempt is in flight.
	StateConnecting State = iota
	// StateOpen means the handshake completed and queries can be served.
	StateOpen
	// StateClosedTransient means the connection dropped and a reconnect
	// attempt is scheduled.
	StateClosedTransient
	// StateClosedTerminal means the session was logged out; the manager is
	// dead and will not reconnect.
	StateClosedTerminal
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosedTransient:
		return "closed-transient"
	case StateClosedTerminal:
		return "closed-terminal"
	default:
		return "unknown"
	}
}
