package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/perch-chat/perch-go/pkg/config"
	"github.com/perch-chat/perch-go/pkg/connection"
	"github.com/perch-chat/perch-go/pkg/log"
	"github.com/perch-chat/perch-go/pkg/subscribe/mocks"
)

func TestNewClient(t *testing.T) {
	t.Run("invalid config rejected", func(t *testing.T) {
		_, err := NewClient(&config.Config{}, ClientDeps{Dial: okDial})
		assert.ErrorIs(t, err, config.ErrNoAccounts)
	})

	t.Run("one session per account", func(t *testing.T) {
		cfg := &config.Config{
			Accounts: []config.Account{{Name: "alice"}, {Name: "bob"}},
		}
		c, err := NewClient(cfg, ClientDeps{Dial: okDial})
		require.NoError(t, err)
		defer c.Close()

		assert.Equal(t, []string{"alice", "bob"}, c.Accounts())
		assert.NotNil(t, c.Session("alice"))
		assert.NotNil(t, c.Session("bob"))
		assert.Nil(t, c.Session("carol"))
	})
}

func TestClientStartAll(t *testing.T) {
	t.Run("starts every session", func(t *testing.T) {
		cfg := &config.Config{
			Accounts: []config.Account{{Name: "alice"}, {Name: "bob"}},
		}
		c, err := NewClient(cfg, ClientDeps{Dial: okDial})
		require.NoError(t, err)
		defer c.Close()

		require.NoError(t, c.StartAll(context.Background()))
		assert.Equal(t, connection.StateJoined, c.Session("alice").State())
		assert.Equal(t, connection.StateJoined, c.Session("bob").State())
	})

	t.Run("dial failure names the account", func(t *testing.T) {
		cfg := &config.Config{
			Accounts: []config.Account{{Name: "alice"}},
		}
		c, err := NewClient(cfg, ClientDeps{
			Dial: func(ctx context.Context) error { return errors.New("refused") },
		})
		require.NoError(t, err)
		defer c.Close()

		err = c.StartAll(context.Background())
		assert.ErrorContains(t, err, "account alice")
	})
}

func TestClientEventLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "perch.plog")
	cfg := &config.Config{
		Accounts: []config.Account{{
			Name:           "alice",
			UserID:         "u-1",
			Token:          "tok",
			ClientID:       "cid",
			PrimaryChannel: "alice",
		}},
		EventLogPath: logPath,
	}

	resolver := mocks.NewMockResolver(t)
	submitter := mocks.NewMockSubmitter(t)
	resolver.EXPECT().Resolve(mock.Anything, []string{"alice"}, "tok", "cid").
		Return(map[string]string{"alice": "id-1"}, nil).Once()
	submitter.EXPECT().SubscribeChat(mock.Anything, "id-1", "u-1").
		Return(true, nil).Once()

	c, err := NewClient(cfg, ClientDeps{
		Dial:      okDial,
		Resolver:  resolver,
		Submitter: submitter,
	})
	require.NoError(t, err)

	require.NoError(t, c.StartAll(context.Background()))
	c.Close()

	reader, err := log.NewReader(logPath)
	require.NoError(t, err)
	defer reader.Close()

	var ops []log.SubscriptionOp
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if event.Subscription != nil {
			ops = append(ops, event.Subscription.Op)
		}
	}
	assert.Equal(t, []log.SubscriptionOp{log.OpPrimary}, ops)
}
