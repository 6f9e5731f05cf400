package session

import "context"

// EventKind discriminates connection-layer events.
type EventKind int

const (
	// EventConnected fires when the handshake completes.
	EventConnected EventKind = iota
	// EventDisconnected fires on any non-logout connection loss.
	EventDisconnected
	// EventLoggedOut fires when the network terminated the session
	// credentials. Terminal; the manager stops reconnecting.
	EventLoggedOut
	// EventPairingCode carries a pairing token to present to the user. May
	// fire multiple times before the first EventConnected.
	EventPairingCode
)

// Event is one message from the connection layer to the Manager.
type Event struct {
	Kind EventKind
	// Code is the pairing token for EventPairingCode.
	Code string
	// Cause carries the failure behind EventDisconnected, when known.
	Cause error
}

// Transport is the connection layer driving one session. The Manager is the
// exclusive owner: it alone calls Connect and Disconnect, and it consumes
// the event channel until the transport closes it.
type Transport interface {
	// Connect opens (or resumes) the connection. It returns once the attempt
	// is underway; completion is reported via Events.
	Connect(ctx context.Context) error
	// Disconnect tears the connection down without logging out.
	Disconnect()
	// Events returns the channel of lifecycle events. The transport closes
	// it when no further events will be delivered.
	Events() <-chan Event
}

// Directory answers whether a canonical address has an account on the
// messaging network.
type Directory interface {
	IsRegistered(ctx context.Context, address string) (bool, error)
}
