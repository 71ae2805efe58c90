// Package retry implements a bounded-attempt retry executor with
// exponential backoff.
//
// The engine runs an operation up to a configured number of attempts.
// The operation reports, per attempt, whether the engine should try
// again; transient transport failures (network, syscall, and short-read
// I/O errors) are treated as an implicit retry signal. Any other error
// stops the engine immediately.
//
// # Exhaustion
//
// Running out of attempts is reported as a typed *ExhaustedError that
// carries the attempt count and the last failure seen. This keeps "the
// operation said no" distinguishable from "the engine gave up":
//
//	res, err := retry.Do(ctx, op, retry.WithMaxAttempts(5))
//	var exhausted *retry.ExhaustedError
//	if errors.As(err, &exhausted) {
//	    log.Warn("gave up", "attempts", exhausted.Attempts)
//	}
//
// # Backoff
//
// The default policy sleeps min(2^attempt, 60) seconds between attempts,
// so attempts 0, 1, 2 wait 1s, 2s, 4s. Callers may supply their own
// backoff function and, in tests, an artificial sleeper so no wall-clock
// waiting occurs.
//
// The engine holds no state of its own; it is safe for concurrent use as
// long as the operation closures are.
package retry
