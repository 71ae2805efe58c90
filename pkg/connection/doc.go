// Package connection provides connection lifecycle management for a
// chat backend.
//
// This package handles:
//   - Exponential backoff for reconnection attempts
//   - Jitter to prevent thundering herd
//   - Connection state tracking
//   - Automatic reconnection on connection loss
//
// # Reconnection Strategy
//
// When the chat connection is lost, the backend uses exponential
// backoff:
//
//  1. Initial delay: 1 second
//  2. Exponential increase: 2s, 4s, 8s, 16s, 32s
//  3. Maximum delay: 60 seconds
//  4. Continue at 60s until successful
//  5. Reset to 1s on successful reconnection
//
// # Jitter
//
// To prevent thundering herd when multiple accounts reconnect:
//
//	actual_delay = base_delay + random(0, base_delay * 0.25)
//
// # State Model
//
// The State enum is shared with the rest of the client. The Manager
// drives Connecting and Connected; the owning session advances Joining
// and Joined once channel subscription work starts and completes. A
// successful reconnect fires the OnConnected callback, which sessions
// use to re-establish their channel subscriptions.
package connection
