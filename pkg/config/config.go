package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/perch-chat/perch-go/pkg/chat"
)

// Config errors.
var (
	ErrNoAccounts       = errors.New("no accounts configured")
	ErrDuplicateAccount = errors.New("duplicate account name")
)

// Config is the operator-edited client configuration.
type Config struct {
	// Accounts lists the chat accounts the client runs.
	Accounts []Account `yaml:"accounts"`

	// EventLogPath is where the CBOR event log is written.
	// Empty disables event logging.
	EventLogPath string `yaml:"event_log_path,omitempty"`

	// StatePath is where runtime session state is persisted as JSON.
	// Empty disables state persistence.
	StatePath string `yaml:"state_path,omitempty"`

	// Retry tunes per-channel resubscription retries.
	Retry RetryConfig `yaml:"retry,omitempty"`
}

// Account configures one chat account.
type Account struct {
	// Name is the account's login name.
	Name string `yaml:"name"`

	// UserID is the account's stable user identifier.
	UserID string `yaml:"user_id,omitempty"`

	// Token authenticates the account against the chat service.
	Token string `yaml:"token,omitempty"`

	// ClientID identifies the client application to the resolver.
	ClientID string `yaml:"client_id,omitempty"`

	// PrimaryChannel is the channel joined at startup. Stored
	// normalized.
	PrimaryChannel string `yaml:"primary_channel,omitempty"`
}

// RetryConfig tunes the resubscription retry policy.
type RetryConfig struct {
	// MaxAttempts is the per-channel attempt ceiling. Zero means the
	// default (5).
	MaxAttempts int `yaml:"max_attempts,omitempty"`
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if len(c.Accounts) == 0 {
		return ErrNoAccounts
	}

	seen := make(map[string]bool, len(c.Accounts))
	for i, acct := range c.Accounts {
		if acct.Name == "" {
			return fmt.Errorf("account %d: name is required", i)
		}
		if seen[acct.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateAccount, acct.Name)
		}
		seen[acct.Name] = true
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry.max_attempts must not be negative")
	}
	return nil
}

// normalize canonicalizes channel names after load.
func (c *Config) normalize() {
	for i := range c.Accounts {
		c.Accounts[i].PrimaryChannel = chat.Normalize(c.Accounts[i].PrimaryChannel)
	}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config parse error: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML with permissions 0600; tokens
// live in this file.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// StateVersion is the current version of the state file format.
const StateVersion = 1

// SessionState contains the machine-written runtime state.
type SessionState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Accounts contains per-account session snapshots keyed by
	// account name.
	Accounts map[string]AccountState `json:"accounts,omitempty"`
}

// AccountState is one account's session snapshot.
type AccountState struct {
	// LastConnectedAt is when the account last reached the Joined
	// state.
	LastConnectedAt time.Time `json:"last_connected_at,omitempty"`

	// LastConnectionID is the UUID of the most recent connection, for
	// correlating with the event log.
	LastConnectionID string `json:"last_connection_id,omitempty"`
}
