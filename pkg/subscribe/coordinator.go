package subscribe

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/perch-chat/perch-go/pkg/chat"
	"github.com/perch-chat/perch-go/pkg/retry"
)

// ResubscribeMaxAttempts is the per-channel subscribe attempt ceiling
// during bulk resubscription.
const ResubscribeMaxAttempts = 5

// Config carries the Coordinator's dependencies. The zero value of
// optional fields is usable: a nil Resolver or Submitter disables the
// corresponding operations, a nil Logger discards logs, and zero retry
// fields fall back to the defaults.
type Config struct {
	// Resolver maps channel names to identifiers. Optional.
	Resolver Resolver

	// Submitter requests chat subscriptions. Optional.
	Submitter Submitter

	// Channels is the set of joined channels the coordinator confirms
	// successes into. Required.
	Channels *chat.ChannelSet

	// PrimaryChannel is the designated startup channel. Optional.
	PrimaryChannel string

	// AccountUserID identifies the account subscriptions are made for.
	AccountUserID string

	// Token and ClientID authenticate resolver lookups.
	Token    string
	ClientID string

	// Logger receives join confirmations and per-channel failure
	// warnings. Optional.
	Logger *slog.Logger

	// MaxAttempts overrides ResubscribeMaxAttempts. Optional.
	MaxAttempts int

	// Backoff overrides the default exponential backoff. Optional.
	Backoff retry.BackoffFunc

	// Sleep overrides the inter-attempt sleep. Tests use this to avoid
	// wall-clock waits. Optional.
	Sleep retry.SleepFunc
}

// Coordinator orchestrates primary-channel subscription, bulk
// resubscription after a reconnect, and on-demand channel joins.
// All entry points return a success flag and never an error; failures
// are logged and absorbed.
type Coordinator struct {
	resolver  Resolver
	submitter Submitter
	channels  *chat.ChannelSet

	primary   string
	accountID string
	token     string
	clientID  string

	logger *slog.Logger

	maxAttempts int
	backoff     retry.BackoffFunc
	sleep       retry.SleepFunc
}

// NewCoordinator creates a coordinator from its dependency struct.
func NewCoordinator(cfg Config) *Coordinator {
	if cfg.Channels == nil {
		cfg.Channels = chat.NewChannelSet()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = ResubscribeMaxAttempts
	}
	if cfg.Backoff == nil {
		cfg.Backoff = retry.DefaultBackoff
	}

	return &Coordinator{
		resolver:    cfg.Resolver,
		submitter:   cfg.Submitter,
		channels:    cfg.Channels,
		primary:     chat.Normalize(cfg.PrimaryChannel),
		accountID:   cfg.AccountUserID,
		token:       cfg.Token,
		clientID:    cfg.ClientID,
		logger:      cfg.Logger,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
		sleep:       cfg.Sleep,
	}
}

// Channels returns the coordinator's channel set.
func (c *Coordinator) Channels() *chat.ChannelSet {
	return c.channels
}

// SubscribePrimary subscribes to the account's primary channel using
// the caller-supplied name→id map. With no submitter configured there
// is nothing to subscribe to and the call trivially succeeds. It fails
// without a subscribe call when no primary channel is configured or the
// primary channel is missing from userIDs; otherwise exactly one
// subscribe call is issued and its outcome returned verbatim.
func (c *Coordinator) SubscribePrimary(ctx context.Context, userIDs map[string]string) bool {
	if c.submitter == nil {
		return true
	}
	if c.primary == "" {
		c.logger.Warn("no primary channel configured")
		return false
	}

	id, ok := userIDs[c.primary]
	if !ok {
		c.logger.Warn("primary channel missing from user id map", "channel", c.primary)
		return false
	}

	accepted, err := c.submitter.SubscribeChat(ctx, id, c.accountID)
	if err != nil {
		c.logger.Warn("primary channel subscription failed", "channel", c.primary, "error", err)
		return false
	}
	if accepted {
		c.logger.Info("joined channel", "channel", c.primary)
	}
	return accepted
}

// ResubscribeAll re-establishes the subscription of every joined
// channel after a reconnect. Channels are processed independently in
// insertion order; each channel's identifier is resolved and its
// subscribe call retried with exponential backoff. The result is the
// logical AND across all channels — a single channel's failure degrades
// the aggregate but never aborts the batch. Membership of the channel
// set is not modified.
//
// With no submitter or no resolver configured the operation is
// trivially successful, even when the channel set is non-empty.
func (c *Coordinator) ResubscribeAll(ctx context.Context) bool {
	if c.submitter == nil || c.resolver == nil {
		return true
	}

	ok := true
	for _, channel := range c.channels.Channels() {
		if !c.resubscribe(ctx, channel) {
			ok = false
		}
	}
	return ok
}

// resubscribe recovers a single channel: resolve, then subscribe with
// retry. Every failure path logs a warning and returns false.
func (c *Coordinator) resubscribe(ctx context.Context, channel string) bool {
	ids, err := c.resolver.Resolve(ctx, []string{channel}, c.token, c.clientID)
	if err != nil {
		c.logger.Warn("channel id resolution failed", "channel", channel, "error", err)
		return false
	}
	id, found := ids[channel]
	if !found {
		c.logger.Warn("channel id not resolved", "channel", channel)
		return false
	}

	opts := []retry.Option{
		retry.WithMaxAttempts(c.maxAttempts),
		retry.WithBackoff(c.backoff),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			c.logger.Warn("resubscribe attempt failed",
				"channel", channel, "attempt", attempt, "delay", delay, "error", err)
		}),
	}
	if c.sleep != nil {
		opts = append(opts, retry.WithSleeper(c.sleep))
	}

	accepted, err := retry.Do(ctx, func(ctx context.Context, _ int) (bool, bool, error) {
		accepted, err := c.submitter.SubscribeChat(ctx, id, c.accountID)
		if err != nil {
			// Transient errors become retry signals inside the engine.
			return false, false, err
		}
		// A plain rejection is terminal; retrying will not change it.
		return accepted, false, nil
	}, opts...)

	if err != nil {
		var exhausted *retry.ExhaustedError
		if errors.As(err, &exhausted) {
			c.logger.Warn("resubscribe attempts exhausted",
				"channel", channel, "attempts", exhausted.Attempts, "error", exhausted.LastErr)
		} else {
			c.logger.Warn("resubscribe failed", "channel", channel, "error", err)
		}
		return false
	}
	if !accepted {
		c.logger.Warn("resubscribe rejected", "channel", channel)
		return false
	}
	return true
}

// JoinChannel joins a single channel on demand. The name is normalized
// first; joining an already-joined channel succeeds immediately without
// touching the resolver or submitter. The subscribe call is single-shot
// — unlike resubscription there is no retry. The channel is added to
// the set only after the subscription is confirmed. All failures are
// logged and reported as false; nothing propagates to the caller.
func (c *Coordinator) JoinChannel(ctx context.Context, name string) bool {
	channel := chat.Normalize(name)
	if c.channels.Contains(channel) {
		return true
	}

	if c.resolver == nil || c.submitter == nil {
		c.logger.Warn("cannot join channel: subscription capabilities not configured", "channel", channel)
		return false
	}

	ids, err := c.resolver.Resolve(ctx, []string{channel}, c.token, c.clientID)
	if err != nil {
		c.logger.Warn("channel id resolution failed", "channel", channel, "error", err)
		return false
	}
	id, found := ids[channel]
	if !found {
		c.logger.Warn("channel id not resolved", "channel", channel)
		return false
	}

	accepted, err := c.submitter.SubscribeChat(ctx, id, c.accountID)
	if err != nil {
		c.logger.Warn("channel subscription failed", "channel", channel, "error", err)
		return false
	}
	if !accepted {
		c.logger.Warn("channel subscription rejected", "channel", channel)
		return false
	}

	c.channels.Add(channel)
	c.logger.Info("joined channel", "channel", channel)
	return true
}
