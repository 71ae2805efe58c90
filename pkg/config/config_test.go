package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := `accounts:
  - name: alice
    user_id: "12345"
    token: oauth-token
    client_id: client-abc
    primary_channel: "#Alice"
  - name: bob
event_log_path: /tmp/perch.plog
retry:
  max_attempts: 3
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0600))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Len(t, cfg.Accounts, 2)
		assert.Equal(t, "alice", cfg.Accounts[0].Name)
		assert.Equal(t, "12345", cfg.Accounts[0].UserID)
		assert.Equal(t, "alice", cfg.Accounts[0].PrimaryChannel)
		assert.Equal(t, "/tmp/perch.plog", cfg.EventLogPath)
		assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("accounts: [pl"), 0600))

		_, err := Load(path)
		assert.ErrorContains(t, err, "config parse error")
	})

	t.Run("empty accounts", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("accounts: []"), 0600))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrNoAccounts)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("duplicate account name", func(t *testing.T) {
		cfg := &Config{Accounts: []Account{{Name: "alice"}, {Name: "alice"}}}
		assert.ErrorIs(t, cfg.Validate(), ErrDuplicateAccount)
	})

	t.Run("missing account name", func(t *testing.T) {
		cfg := &Config{Accounts: []Account{{Token: "t"}}}
		assert.ErrorContains(t, cfg.Validate(), "name is required")
	})

	t.Run("negative max attempts", func(t *testing.T) {
		cfg := &Config{
			Accounts: []Account{{Name: "alice"}},
			Retry:    RetryConfig{MaxAttempts: -1},
		}
		assert.Error(t, cfg.Validate())
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &Config{
		Accounts: []Account{{
			Name:           "alice",
			Token:          "secret",
			PrimaryChannel: "alice",
		}},
	}
	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Accounts, loaded.Accounts)
}

func TestSessionStateStore(t *testing.T) {
	t.Run("load without file returns nil", func(t *testing.T) {
		store := NewSessionStateStore(filepath.Join(t.TempDir(), "state.json"))

		state, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("save and load", func(t *testing.T) {
		store := NewSessionStateStore(filepath.Join(t.TempDir(), "state.json"))

		require.NoError(t, store.Save(&SessionState{
			Accounts: map[string]AccountState{
				"alice": {LastConnectionID: "conn-1"},
			},
		}))

		state, err := store.Load()
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, StateVersion, state.Version)
		assert.False(t, state.SavedAt.IsZero())
		assert.Equal(t, "conn-1", state.Accounts["alice"].LastConnectionID)
	})

	t.Run("record connection creates file", func(t *testing.T) {
		store := NewSessionStateStore(filepath.Join(t.TempDir(), "state.json"))

		require.NoError(t, store.RecordConnection("alice", "conn-9"))

		state, err := store.Load()
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, "conn-9", state.Accounts["alice"].LastConnectionID)
		assert.False(t, state.Accounts["alice"].LastConnectedAt.IsZero())
	})

	t.Run("clear", func(t *testing.T) {
		store := NewSessionStateStore(filepath.Join(t.TempDir(), "state.json"))
		require.NoError(t, store.Save(&SessionState{}))

		require.NoError(t, store.Clear())
		state, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, state)

		// Clearing again is not an error.
		require.NoError(t, store.Clear())
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": 99}`), 0644))

		_, err := NewSessionStateStore(path).Load()
		assert.ErrorContains(t, err, "unsupported state version")
	})
}
