package connection

// State represents the backend connectivity phase. It is owned by the
// backend session; other components read it but never advance it.
type State uint8

const (
	// StateDisconnected indicates no active connection.
	StateDisconnected State = iota

	// StateConnecting indicates a connection attempt is in progress.
	StateConnecting

	// StateConnected indicates an active connection, before any channel
	// subscriptions have been established.
	StateConnected

	// StateJoining indicates channel subscription work is in progress.
	StateJoining

	// StateJoined indicates the primary channel subscription is
	// confirmed and the session is fully operational.
	StateJoined
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateJoining:
		return "JOINING"
	case StateJoined:
		return "JOINED"
	default:
		return "UNKNOWN"
	}
}
