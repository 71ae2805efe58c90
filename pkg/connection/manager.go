package connection

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Connection errors.
var (
	ErrManagerClosed    = errors.New("connection manager closed")
	ErrAlreadyConnected = errors.New("already connected")
	ErrNotConnected     = errors.New("not connected")
	ErrInvalidState     = errors.New("invalid state transition")
)

// connectTimeout bounds a single reconnection attempt.
const connectTimeout = 30 * time.Second

// DialFunc is called to establish the chat connection.
// It should return nil on success or an error on failure.
type DialFunc func(ctx context.Context) error

// Manager manages one account's connection lifecycle with automatic
// reconnection. The Joining and Joined phases are advanced by the
// owning session through SetJoining/SetJoined once the connection is
// up and subscription work proceeds.
type Manager struct {
	mu sync.RWMutex

	// Current state
	state State

	// Terminal flag, separate from the connectivity phase
	closed bool

	// Backoff calculator
	backoff *Backoff

	// Connection function
	dialFn DialFunc

	// Auto-reconnect enabled
	autoReconnect bool

	// Context for cancellation
	ctx    context.Context
	cancel context.CancelFunc

	// Wait group for the reconnection goroutine
	wg sync.WaitGroup

	// Channel to signal reconnection should start
	reconnectCh chan struct{}

	// Callbacks
	onStateChange  func(oldState, newState State)
	onConnected    func()
	onDisconnected func()
	onReconnecting func(attempt int, delay time.Duration)
}

// NewManager creates a new connection manager.
func NewManager(dialFn DialFunc) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		state:         StateDisconnected,
		backoff:       NewBackoff(),
		dialFn:        dialFn,
		autoReconnect: true,
		ctx:           ctx,
		cancel:        cancel,
		reconnectCh:   make(chan struct{}, 1),
	}
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsConnected returns true if the connection is up, regardless of how
// far channel joining has progressed.
func (m *Manager) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateConnected || m.state == StateJoining || m.state == StateJoined
}

// SetAutoReconnect enables or disables automatic reconnection.
func (m *Manager) SetAutoReconnect(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoReconnect = enabled
}

// Connect initiates a connection.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrManagerClosed
	}
	if m.state != StateDisconnected {
		m.mu.Unlock()
		return ErrAlreadyConnected
	}

	oldState := m.state
	m.state = StateConnecting
	m.mu.Unlock()

	m.notifyStateChange(oldState, StateConnecting)

	err := m.dialFn(ctx)

	m.mu.Lock()
	if err != nil {
		m.state = StateDisconnected
		m.mu.Unlock()
		m.notifyStateChange(StateConnecting, StateDisconnected)
		return err
	}

	m.state = StateConnected
	m.backoff.Reset()
	m.mu.Unlock()

	m.notifyStateChange(StateConnecting, StateConnected)
	if m.onConnected != nil {
		m.onConnected()
	}

	return nil
}

// SetJoining marks channel subscription work as started.
func (m *Manager) SetJoining() error {
	return m.advance(StateJoining, StateConnected)
}

// SetJoined marks channel subscription work as complete.
func (m *Manager) SetJoined() error {
	return m.advance(StateJoined, StateConnected, StateJoining)
}

// advance moves to next if the current state is one of from.
func (m *Manager) advance(next State, from ...State) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrManagerClosed
	}

	valid := false
	for _, s := range from {
		if m.state == s {
			valid = true
			break
		}
	}
	if !valid {
		m.mu.Unlock()
		return ErrInvalidState
	}

	oldState := m.state
	m.state = next
	m.mu.Unlock()

	m.notifyStateChange(oldState, next)
	return nil
}

// NotifyConnectionLost should be called when a connection loss is
// detected. This triggers automatic reconnection if enabled.
func (m *Manager) NotifyConnectionLost() {
	m.mu.Lock()
	if m.closed || m.state == StateDisconnected || m.state == StateConnecting {
		m.mu.Unlock()
		return
	}

	oldState := m.state
	autoReconnect := m.autoReconnect
	m.state = StateDisconnected
	m.mu.Unlock()

	m.notifyStateChange(oldState, StateDisconnected)
	if m.onDisconnected != nil {
		m.onDisconnected()
	}

	if autoReconnect {
		m.triggerReconnect()
	}
}

// StartReconnectLoop starts the background reconnection loop.
// Must be called once before automatic reconnection will work.
func (m *Manager) StartReconnectLoop() {
	m.wg.Add(1)
	go m.reconnectLoop()
}

// Close shuts down the connection manager.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}

	m.closed = true
	oldState := m.state
	m.state = StateDisconnected
	m.mu.Unlock()

	if oldState != StateDisconnected {
		m.notifyStateChange(oldState, StateDisconnected)
	}

	m.cancel()
	m.wg.Wait()
}

// triggerReconnect signals that reconnection should be attempted.
func (m *Manager) triggerReconnect() {
	select {
	case m.reconnectCh <- struct{}{}:
	default:
		// Already pending
	}
}

// reconnectLoop runs in a goroutine and handles reconnection attempts.
func (m *Manager) reconnectLoop() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.reconnectCh:
			m.attemptReconnect()
		}
	}
}

// attemptReconnect performs reconnection with backoff until the
// connection is re-established or the manager closes.
func (m *Manager) attemptReconnect() {
	for {
		m.mu.RLock()
		closed := m.closed
		state := m.state
		m.mu.RUnlock()

		if closed || state != StateDisconnected {
			return
		}

		delay := m.backoff.Next()
		attempts := m.backoff.Attempts()

		if m.onReconnecting != nil {
			m.onReconnecting(attempts, delay)
		}

		select {
		case <-m.ctx.Done():
			return
		case <-time.After(delay):
		}

		m.mu.Lock()
		if m.closed || m.state != StateDisconnected {
			m.mu.Unlock()
			return
		}
		m.state = StateConnecting
		m.mu.Unlock()
		m.notifyStateChange(StateDisconnected, StateConnecting)

		ctx, cancel := context.WithTimeout(m.ctx, connectTimeout)
		err := m.dialFn(ctx)
		cancel()

		if err == nil {
			m.mu.Lock()
			m.state = StateConnected
			m.backoff.Reset()
			m.mu.Unlock()

			m.notifyStateChange(StateConnecting, StateConnected)
			if m.onConnected != nil {
				m.onConnected()
			}
			return
		}

		m.mu.Lock()
		m.state = StateDisconnected
		m.mu.Unlock()
		m.notifyStateChange(StateConnecting, StateDisconnected)
		// Failed - continue looping with next backoff
	}
}

// notifyStateChange invokes the state-change callback if set.
func (m *Manager) notifyStateChange(oldState, newState State) {
	if m.onStateChange != nil {
		m.onStateChange(oldState, newState)
	}
}

// OnStateChange sets a callback for state changes.
// Set callbacks before starting the reconnect loop.
func (m *Manager) OnStateChange(fn func(oldState, newState State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStateChange = fn
}

// OnConnected sets a callback for successful connection.
func (m *Manager) OnConnected(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onConnected = fn
}

// OnDisconnected sets a callback for connection loss.
func (m *Manager) OnDisconnected(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDisconnected = fn
}

// OnReconnecting sets a callback for reconnection attempts.
func (m *Manager) OnReconnecting(fn func(attempt int, delay time.Duration)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReconnecting = fn
}

// BackoffAttempts returns the current number of reconnection attempts.
func (m *Manager) BackoffAttempts() int {
	return m.backoff.Attempts()
}
