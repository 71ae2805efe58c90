// Package subscribe coordinates per-channel chat subscriptions for one
// account.
//
// The Coordinator turns channel names into confirmed chat-message
// subscriptions using two external capabilities: a Resolver that maps
// channel names to stable identifiers, and a Submitter that requests an
// active subscription for a resolved identifier. Both are optional;
// absent capabilities make the corresponding operations benign no-ops
// ("feature not enabled", not failure).
//
// # Entry points
//
// SubscribePrimary establishes the account's designated primary channel
// at startup with a single subscribe call. JoinChannel joins one channel
// on demand, idempotently. ResubscribeAll re-establishes every joined
// channel after a reconnect, retrying each channel's subscribe call up
// to ResubscribeMaxAttempts times with exponential backoff.
//
// # Per-channel lifecycle during resubscription
//
//	Unresolved → Resolving → Resolved | ResolutionFailed
//	Resolved → Subscribing(attempt 0..4) → Subscribed | SubscriptionExhausted
//
// Failures are tolerated per channel: one unreachable channel degrades
// the aggregate result but never blocks recovery of the others.
// ResubscribeAll reports the logical AND across all channels and relies
// on its warning logs to diagnose which channels failed and why.
package subscribe
