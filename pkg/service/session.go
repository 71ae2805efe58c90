package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/perch-chat/perch-go/pkg/chat"
	"github.com/perch-chat/perch-go/pkg/config"
	"github.com/perch-chat/perch-go/pkg/connection"
	"github.com/perch-chat/perch-go/pkg/log"
	"github.com/perch-chat/perch-go/pkg/subscribe"
)

// Session errors.
var (
	ErrSessionClosed = errors.New("session closed")
)

// SessionConfig carries an AccountSession's dependencies.
type SessionConfig struct {
	// Account is the account this session runs.
	Account config.Account

	// Dial establishes the chat connection. Required.
	Dial connection.DialFunc

	// Resolver maps channel names to identifiers. Optional.
	Resolver subscribe.Resolver

	// Submitter requests chat subscriptions. Optional.
	Submitter subscribe.Submitter

	// Logger for diagnostics. Optional.
	Logger *slog.Logger

	// Events receives structured lifecycle events. Optional.
	Events log.Logger

	// States persists per-account session snapshots. Optional.
	States *config.SessionStateStore

	// RemoteAddr is the chat server address, stamped into events.
	RemoteAddr string

	// MaxAttempts overrides the resubscription attempt ceiling.
	MaxAttempts int
}

// AccountSession manages one chat account: its connection, its joined
// channels, and the subscription work that moves the connection from
// Connected through Joining to Joined.
type AccountSession struct {
	mu sync.RWMutex

	account  config.Account
	connID   string
	manager  *connection.Manager
	coord    *subscribe.Coordinator
	channels *chat.ChannelSet
	resolver subscribe.Resolver

	logger *slog.Logger
	events log.Logger
	states *config.SessionStateStore

	remoteAddr   string
	hasSubmitter bool

	// Lifecycle for the reconnect rejoin goroutine.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Set once the initial join flow has run; reconnects after this
	// point trigger bulk resubscription.
	started bool
	closed  bool
}

// NewAccountSession creates a session. The connection manager's
// reconnect loop is started; call Start to connect.
func NewAccountSession(cfg SessionConfig) *AccountSession {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Events == nil {
		cfg.Events = log.NoopLogger{}
	}
	logger := cfg.Logger.With("account", cfg.Account.Name)

	channels := chat.NewChannelSet()
	coord := subscribe.NewCoordinator(subscribe.Config{
		Resolver:       cfg.Resolver,
		Submitter:      cfg.Submitter,
		Channels:       channels,
		PrimaryChannel: cfg.Account.PrimaryChannel,
		AccountUserID:  cfg.Account.UserID,
		Token:          cfg.Account.Token,
		ClientID:       cfg.Account.ClientID,
		Logger:         logger,
		MaxAttempts:    cfg.MaxAttempts,
	})

	ctx, cancel := context.WithCancel(context.Background())

	s := &AccountSession{
		account:      cfg.Account,
		connID:       uuid.NewString(),
		coord:        coord,
		channels:     channels,
		resolver:     cfg.Resolver,
		logger:       logger,
		events:       cfg.Events,
		states:       cfg.States,
		remoteAddr:   cfg.RemoteAddr,
		hasSubmitter: cfg.Submitter != nil,
		ctx:          ctx,
		cancel:       cancel,
	}

	s.manager = connection.NewManager(cfg.Dial)
	s.manager.OnStateChange(s.onStateChange)
	s.manager.OnConnected(s.onConnected)
	s.manager.OnReconnecting(func(attempt int, delay time.Duration) {
		logger.Info("reconnecting", "attempt", attempt, "delay", delay)
	})
	s.manager.StartReconnectLoop()

	return s
}

// Account returns the account name.
func (s *AccountSession) Account() string {
	return s.account.Name
}

// ConnectionID returns the session's connection ID.
func (s *AccountSession) ConnectionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connID
}

// State returns the current connection state.
func (s *AccountSession) State() connection.State {
	return s.manager.State()
}

// Channels returns the joined channels in join order.
func (s *AccountSession) Channels() []string {
	return s.channels.Channels()
}

// Start connects and runs the initial join flow: subscribe to the
// primary channel, then mark the session Joined. A primary
// subscription failure is logged and does not fail Start; the
// connection stays usable and channels can still be joined on demand.
func (s *AccountSession) Start(ctx context.Context) error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrSessionClosed
	}
	s.mu.RUnlock()

	if err := s.manager.Connect(ctx); err != nil {
		s.logEvent(log.Event{
			Direction: log.DirectionOut,
			Category:  log.CategoryError,
			Error: &log.ErrorEventData{
				Message: err.Error(),
				Context: "connect",
			},
		})
		return err
	}

	s.joinPrimary(ctx)

	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	s.recordConnection()
	return nil
}

// Join joins a channel on demand. Reports whether the channel is
// joined afterwards.
func (s *AccountSession) Join(ctx context.Context, name string) bool {
	channel := chat.Normalize(name)
	accepted := s.coord.JoinChannel(ctx, channel)

	s.logEvent(log.Event{
		Direction: log.DirectionOut,
		Category:  log.CategorySubscription,
		Channel:   channel,
		Subscription: &log.SubscriptionEvent{
			Op:       log.OpJoin,
			Accepted: accepted,
		},
	})
	return accepted
}

// Part forgets a joined channel. It will no longer be resubscribed
// after reconnects. Reports whether the channel was joined.
func (s *AccountSession) Part(name string) bool {
	return s.channels.Remove(name)
}

// Resubscribe re-runs bulk resubscription on demand.
func (s *AccountSession) Resubscribe(ctx context.Context) bool {
	ok := s.coord.ResubscribeAll(ctx)
	s.logEvent(log.Event{
		Direction: log.DirectionOut,
		Category:  log.CategorySubscription,
		Subscription: &log.SubscriptionEvent{
			Op:       log.OpResubscribe,
			Accepted: ok,
		},
	})
	return ok
}

// ConnectionLost reports a detected connection loss to the manager,
// triggering the reconnect path.
func (s *AccountSession) ConnectionLost() {
	s.manager.NotifyConnectionLost()
}

// Close shuts the session down. Safe to call more than once.
func (s *AccountSession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.manager.Close()
	s.wg.Wait()
}

// joinPrimary advances Connected -> Joining -> Joined around the
// primary-channel subscription.
func (s *AccountSession) joinPrimary(ctx context.Context) {
	if err := s.manager.SetJoining(); err != nil {
		return
	}

	primary := chat.Normalize(s.account.PrimaryChannel)
	accepted := s.coord.SubscribePrimary(ctx, s.resolvePrimary(ctx, primary))
	if accepted && primary != "" && s.hasSubmitter {
		// Confirmed primary joins count for later resubscription.
		s.channels.Add(primary)
	}

	s.logEvent(log.Event{
		Direction: log.DirectionOut,
		Category:  log.CategorySubscription,
		Channel:   primary,
		Subscription: &log.SubscriptionEvent{
			Op:       log.OpPrimary,
			Accepted: accepted,
		},
	})

	if err := s.manager.SetJoined(); err != nil {
		s.logger.Debug("could not mark session joined", "error", err)
	}
}

// resolvePrimary looks up the primary channel's identifier. Returns an
// empty map on any failure; the coordinator reports the miss.
func (s *AccountSession) resolvePrimary(ctx context.Context, primary string) map[string]string {
	if s.resolver == nil || primary == "" {
		return nil
	}

	ids, err := s.resolver.Resolve(ctx, []string{primary}, s.account.Token, s.account.ClientID)
	if err != nil {
		s.logger.Warn("primary channel id resolution failed", "channel", primary, "error", err)
		return nil
	}
	return ids
}

// onConnected runs on every successful connection. After the initial
// join flow has completed, a new connection means a reconnect and every
// joined channel needs its subscription re-established.
func (s *AccountSession) onConnected() {
	s.mu.Lock()
	started := s.started
	if started {
		// Fresh connection ID per reconnect.
		s.connID = uuid.NewString()
	}
	s.mu.Unlock()

	if !started {
		return
	}

	s.recordConnection()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.rejoin(s.ctx)
	}()
}

// rejoin re-establishes all channel subscriptions after a reconnect.
func (s *AccountSession) rejoin(ctx context.Context) {
	if err := s.manager.SetJoining(); err != nil {
		return
	}

	ok := s.coord.ResubscribeAll(ctx)

	s.logEvent(log.Event{
		Direction: log.DirectionOut,
		Category:  log.CategorySubscription,
		Subscription: &log.SubscriptionEvent{
			Op:       log.OpResubscribe,
			Accepted: ok,
		},
	})
	if !ok {
		s.logger.Warn("resubscription incomplete", "channels", s.channels.Len())
	}

	if err := s.manager.SetJoined(); err != nil {
		s.logger.Debug("could not mark session joined", "error", err)
	}
}

// onStateChange emits a state-change event for every transition.
func (s *AccountSession) onStateChange(oldState, newState connection.State) {
	s.logEvent(log.Event{
		Direction: log.DirectionIn,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			OldState: oldState.String(),
			NewState: newState.String(),
		},
	})
}

// recordConnection updates the persisted session snapshot, if a state
// store is configured.
func (s *AccountSession) recordConnection() {
	if s.states == nil {
		return
	}
	if err := s.states.RecordConnection(s.account.Name, s.ConnectionID()); err != nil {
		s.logger.Warn("failed to persist session state", "error", err)
	}
}

// logEvent stamps session identity onto an event and logs it.
func (s *AccountSession) logEvent(event log.Event) {
	event.Timestamp = time.Now()
	event.ConnectionID = s.ConnectionID()
	event.Account = s.account.Name
	event.RemoteAddr = s.remoteAddr
	s.events.Log(event)
}
