package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogAdapterWritesAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	adapter := NewSlogAdapter(logger)
	adapter.Log(Event{
		ConnectionID: "conn-1",
		Direction:    DirectionOut,
		Category:     CategorySubscription,
		Account:      "perchbot",
		Channel:      "foo",
		Subscription: &SubscriptionEvent{Op: OpJoin, ChannelID: "123", Accepted: true},
	})

	out := buf.String()
	for _, want := range []string{
		"conn_id=conn-1",
		"direction=OUT",
		"category=SUBSCRIPTION",
		"account=perchbot",
		"channel=foo",
		"op=JOIN",
		"accepted=true",
		"channel_id=123",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestSlogAdapterStateChange(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	adapter := NewSlogAdapter(logger)
	adapter.Log(Event{
		ConnectionID: "conn-1",
		Category:     CategoryState,
		StateChange:  &StateChangeEvent{OldState: "CONNECTED", NewState: "DISCONNECTED", Reason: "eof"},
	})

	out := buf.String()
	for _, want := range []string{"old_state=CONNECTED", "new_state=DISCONNECTED", "reason=eof"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}
