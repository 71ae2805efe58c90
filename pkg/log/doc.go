// Package log provides structured event logging for the chat client.
//
// This package defines the Logger interface and Event types for
// capturing subscription and connection lifecycle events per account.
// It is separate from operational logging (slog) - event capture
// provides a complete machine-readable trace for debugging and audit.
//
// # Basic Usage
//
// Sessions are configured with a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Events = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.Events, _ = log.NewFileLogger("/var/log/perch/session.plog")
//
//	// Both: use MultiLogger
//	cfg.Events = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Three payloads cover the client's lifecycle: SubscriptionEvent for
// join/resubscribe outcomes, StateChangeEvent for connection phase
// transitions, and ErrorEventData for failures at any point.
//
// # File Format
//
// Log files use CBOR encoding with the .plog extension. Reader streams
// events back with optional filtering for audit tooling.
package log
