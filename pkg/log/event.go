package log

import (
	"time"
)

// Event represents a client log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates event flow relative to the client.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Account is the local account name the event belongs to.
	Account string `cbor:"5,keyasint,omitempty"`

	// Channel is the normalized channel name, when channel-scoped.
	Channel string `cbor:"6,keyasint,omitempty"`

	// RemoteAddr is the chat server address (host:port).
	RemoteAddr string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Subscription *SubscriptionEvent `cbor:"10,keyasint,omitempty"` // Join/resubscribe outcomes
	StateChange  *StateChangeEvent  `cbor:"11,keyasint,omitempty"` // Connection phase transitions
	Error        *ErrorEventData    `cbor:"12,keyasint,omitempty"` // Failures at any point
}

// Direction indicates the direction of event flow.
type Direction uint8

const (
	// DirectionIn indicates an event originating from the server.
	DirectionIn Direction = 0
	// DirectionOut indicates an action initiated by the client.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategorySubscription indicates a subscription lifecycle event.
	CategorySubscription Category = 0
	// CategoryState indicates a connection state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySubscription:
		return "SUBSCRIPTION"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SubscriptionOp identifies which coordinator entry point produced a
// subscription event.
type SubscriptionOp uint8

const (
	// OpPrimary is the startup primary-channel subscription.
	OpPrimary SubscriptionOp = 0
	// OpJoin is an on-demand channel join.
	OpJoin SubscriptionOp = 1
	// OpResubscribe is a per-channel recovery after reconnect.
	OpResubscribe SubscriptionOp = 2
)

// String returns the operation name.
func (o SubscriptionOp) String() string {
	switch o {
	case OpPrimary:
		return "PRIMARY"
	case OpJoin:
		return "JOIN"
	case OpResubscribe:
		return "RESUBSCRIBE"
	default:
		return "UNKNOWN"
	}
}

// SubscriptionEvent captures the outcome of one subscribe attempt.
type SubscriptionEvent struct {
	// Op identifies the coordinator entry point.
	Op SubscriptionOp `cbor:"1,keyasint"`

	// ChannelID is the resolved channel identifier, when known.
	ChannelID string `cbor:"2,keyasint,omitempty"`

	// Attempt is the zero-based retry attempt index.
	Attempt int `cbor:"3,keyasint,omitempty"`

	// Accepted reports whether the subscription was confirmed.
	Accepted bool `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures connection lifecycle transitions.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures error details.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what the client was doing.
	Context string `cbor:"2,keyasint,omitempty"`
}
