package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"
)

// Default retry policy constants.
const (
	// DefaultMaxAttempts is the default attempt ceiling.
	DefaultMaxAttempts = 5

	// MaxBackoff caps the delay produced by DefaultBackoff.
	MaxBackoff = 60 * time.Second
)

// ErrExhausted is the sentinel matched by errors.Is when the engine ran
// out of attempts. The returned error is always an *ExhaustedError with
// the attempt count attached.
var ErrExhausted = errors.New("retry attempts exhausted")

// ErrInvalidAttempts is returned when MaxAttempts < 1.
var ErrInvalidAttempts = errors.New("max attempts must be at least 1")

// ExhaustedError reports that every configured attempt was used without
// the operation producing a non-retry result.
type ExhaustedError struct {
	// Attempts is the number of attempts performed (== MaxAttempts).
	Attempts int

	// LastErr is the failure observed on the final attempt, if any.
	LastErr error
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	if e.LastErr != nil {
		return fmt.Sprintf("retry attempts exhausted after %d attempts: %v", e.Attempts, e.LastErr)
	}
	return fmt.Sprintf("retry attempts exhausted after %d attempts", e.Attempts)
}

// Is reports whether target is ErrExhausted.
func (e *ExhaustedError) Is(target error) bool { return target == ErrExhausted }

// Unwrap returns the failure from the final attempt.
func (e *ExhaustedError) Unwrap() error { return e.LastErr }

// Op is a retryable operation. The zero-based attempt index is passed on
// each invocation. Returning again=true asks the engine for another
// attempt; returning a transient error (see Transient) has the same
// effect. Any other error stops the engine immediately.
type Op[T any] func(ctx context.Context, attempt int) (result T, again bool, err error)

// BackoffFunc maps a zero-based attempt index to the delay slept before
// the next attempt. Delays must be non-negative.
type BackoffFunc func(attempt int) time.Duration

// DefaultBackoff returns min(2^attempt, 60) seconds.
func DefaultBackoff(attempt int) time.Duration {
	if attempt >= 6 { // 2^6 = 64s, already past the cap
		return MaxBackoff
	}
	d := time.Duration(1<<uint(attempt)) * time.Second
	if d > MaxBackoff {
		d = MaxBackoff
	}
	return d
}

// SleepFunc waits for the given duration or until the context is done,
// returning ctx.Err() in the latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// sleep is the default SleepFunc.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// policy holds the resolved retry configuration.
type policy struct {
	maxAttempts int
	backoff     BackoffFunc
	sleep       SleepFunc
	onRetry     func(attempt int, err error, delay time.Duration)
}

// Option customizes a single Do call.
type Option func(*policy)

// WithMaxAttempts sets the attempt ceiling. Must be >= 1.
func WithMaxAttempts(n int) Option {
	return func(p *policy) { p.maxAttempts = n }
}

// WithBackoff replaces the default exponential backoff.
func WithBackoff(fn BackoffFunc) Option {
	return func(p *policy) { p.backoff = fn }
}

// WithSleeper replaces the sleep implementation. Tests use this to
// intercept delays instead of waiting on the wall clock.
func WithSleeper(fn SleepFunc) Option {
	return func(p *policy) { p.sleep = fn }
}

// WithOnRetry registers a hook called before each inter-attempt sleep,
// with the index of the attempt that just failed, the error observed (nil
// when the operation merely asked for another attempt), and the delay
// about to be slept.
func WithOnRetry(fn func(attempt int, err error, delay time.Duration)) Option {
	return func(p *policy) { p.onRetry = fn }
}

// Transient reports whether err is one of the failure kinds the engine
// converts into a retry signal: network errors, syscall errors, file
// path errors, and short-read I/O errors.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var syscallErr *os.SyscallError
	if errors.As(err, &syscallErr) {
		return true
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return true
	}
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.ErrClosedPipe)
}

// Do executes op until it returns a non-retry result, a non-transient
// error occurs, the context is cancelled, or the attempt ceiling is
// reached.
//
// On success the operation's result is returned as-is, with no further
// attempts and no sleeping. On exhaustion the error is an
// *ExhaustedError; on a non-transient failure the operation's error is
// returned unchanged. A transient failure on the final attempt is
// propagated wrapped in the exhaustion error so the caller can still
// reach it through errors.As.
func Do[T any](ctx context.Context, op Op[T], opts ...Option) (T, error) {
	var zero T

	p := policy{
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
		sleep:       sleep,
	}
	for _, opt := range opts {
		opt(&p)
	}
	if p.maxAttempts < 1 {
		return zero, ErrInvalidAttempts
	}

	var lastErr error
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, again, err := op(ctx, attempt)
		if err == nil && !again {
			return result, nil
		}

		if err != nil {
			if !Transient(err) {
				return zero, err
			}
			lastErr = err
		} else {
			lastErr = nil
		}

		if attempt == p.maxAttempts-1 {
			break
		}

		delay := p.backoff(attempt)
		if p.onRetry != nil {
			p.onRetry(attempt, lastErr, delay)
		}
		if err := p.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, &ExhaustedError{Attempts: p.maxAttempts, LastErr: lastErr}
}
