package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/perch-chat/perch-go/pkg/config"
	"github.com/perch-chat/perch-go/pkg/connection"
	"github.com/perch-chat/perch-go/pkg/log"
	"github.com/perch-chat/perch-go/pkg/subscribe"
)

// ClientDeps carries the shared dependencies a Client hands to every
// account session.
type ClientDeps struct {
	// Dial establishes chat connections. Required.
	Dial connection.DialFunc

	// Resolver and Submitter provide subscription capabilities.
	Resolver  subscribe.Resolver
	Submitter subscribe.Submitter

	// Logger for diagnostics. Optional.
	Logger *slog.Logger

	// RemoteAddr is the chat server address.
	RemoteAddr string
}

// Client runs one AccountSession per configured account and owns the
// shared event log and session state store.
type Client struct {
	sessions map[string]*AccountSession
	order    []string
	events   log.Logger
	fileLog  *log.FileLogger
}

// NewClient builds sessions for every account in the configuration.
// If the configuration names an event-log path, a file logger is
// opened and shared by all sessions.
func NewClient(cfg *config.Config, deps ClientDeps) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		sessions: make(map[string]*AccountSession, len(cfg.Accounts)),
		events:   log.NoopLogger{},
	}

	if cfg.EventLogPath != "" {
		fl, err := log.NewFileLogger(cfg.EventLogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open event log: %w", err)
		}
		c.fileLog = fl
		c.events = fl
	}

	var states *config.SessionStateStore
	if cfg.StatePath != "" {
		states = config.NewSessionStateStore(cfg.StatePath)
	}

	for _, acct := range cfg.Accounts {
		s := NewAccountSession(SessionConfig{
			Account:     acct,
			Dial:        deps.Dial,
			Resolver:    deps.Resolver,
			Submitter:   deps.Submitter,
			Logger:      deps.Logger,
			Events:      c.events,
			States:      states,
			RemoteAddr:  deps.RemoteAddr,
			MaxAttempts: cfg.Retry.MaxAttempts,
		})
		c.sessions[acct.Name] = s
		c.order = append(c.order, acct.Name)
	}

	return c, nil
}

// Session returns the session for an account name, or nil.
func (c *Client) Session(account string) *AccountSession {
	return c.sessions[account]
}

// Accounts returns the account names in configuration order.
func (c *Client) Accounts() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// StartAll starts every session. The first connect error aborts the
// startup; already-started sessions keep running.
func (c *Client) StartAll(ctx context.Context) error {
	for _, name := range c.order {
		if err := c.sessions[name].Start(ctx); err != nil {
			return fmt.Errorf("account %s: %w", name, err)
		}
	}
	return nil
}

// Close shuts down all sessions and the event log.
func (c *Client) Close() {
	for _, name := range c.order {
		c.sessions[name].Close()
	}
	if c.fileLog != nil {
		c.fileLog.Close()
	}
}
