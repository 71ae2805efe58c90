package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// SessionStateStore persists session state to a JSON file.
type SessionStateStore struct {
	mu   sync.Mutex
	path string
}

// NewSessionStateStore creates a store that persists to the given
// file path.
func NewSessionStateStore(path string) *SessionStateStore {
	return &SessionStateStore{path: path}
}

// Save writes the state to disk. Version and SavedAt are set by the
// store.
func (s *SessionStateStore) Save(state *SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state.Version = StateVersion
	state.SavedAt = time.Now()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Load reads the state from disk. Returns (nil, nil) if no state file
// exists.
func (s *SessionStateStore) Load() (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	state := &SessionState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	if state.Version > StateVersion {
		return nil, fmt.Errorf("unsupported state version %d", state.Version)
	}
	return state, nil
}

// Clear removes the state file. Not an error if it does not exist.
func (s *SessionStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}

// RecordConnection updates one account's snapshot in the state file,
// creating the file if needed.
func (s *SessionStateStore) RecordConnection(account, connectionID string) error {
	state, err := s.Load()
	if err != nil {
		return err
	}
	if state == nil {
		state = &SessionState{}
	}
	if state.Accounts == nil {
		state.Accounts = make(map[string]AccountState)
	}
	state.Accounts[account] = AccountState{
		LastConnectedAt:  time.Now(),
		LastConnectionID: connectionID,
	}
	return s.Save(state)
}
