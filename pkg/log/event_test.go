package log

import (
	"testing"
	"time"
)

func TestEventCBORRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)
	original := Event{
		Timestamp:    ts,
		ConnectionID: "abc12345-def6-7890-abcd-ef1234567890",
		Direction:    DirectionOut,
		Category:     CategorySubscription,
		Account:      "perchbot",
		Channel:      "foo",
		RemoteAddr:   "chat.example.com:443",
		Subscription: &SubscriptionEvent{
			Op:        OpResubscribe,
			ChannelID: "123456",
			Attempt:   2,
			Accepted:  true,
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	// Compare fields
	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, original.Timestamp)
	}
	if decoded.ConnectionID != original.ConnectionID {
		t.Errorf("ConnectionID: got %q, want %q", decoded.ConnectionID, original.ConnectionID)
	}
	if decoded.Direction != original.Direction {
		t.Errorf("Direction: got %v, want %v", decoded.Direction, original.Direction)
	}
	if decoded.Category != original.Category {
		t.Errorf("Category: got %v, want %v", decoded.Category, original.Category)
	}
	if decoded.Account != original.Account {
		t.Errorf("Account: got %q, want %q", decoded.Account, original.Account)
	}
	if decoded.Channel != original.Channel {
		t.Errorf("Channel: got %q, want %q", decoded.Channel, original.Channel)
	}
	if decoded.Subscription == nil {
		t.Fatal("Subscription payload lost in round trip")
	}
	if *decoded.Subscription != *original.Subscription {
		t.Errorf("Subscription: got %+v, want %+v", *decoded.Subscription, *original.Subscription)
	}
}

func TestEventStateChangeRoundTrip(t *testing.T) {
	original := Event{
		Timestamp:    time.Now().UTC(),
		ConnectionID: "conn-1",
		Direction:    DirectionIn,
		Category:     CategoryState,
		StateChange: &StateChangeEvent{
			OldState: "CONNECTED",
			NewState: "DISCONNECTED",
			Reason:   "read: connection reset",
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.StateChange == nil {
		t.Fatal("StateChange payload lost in round trip")
	}
	if *decoded.StateChange != *original.StateChange {
		t.Errorf("StateChange: got %+v, want %+v", *decoded.StateChange, *original.StateChange)
	}
	if decoded.Subscription != nil || decoded.Error != nil {
		t.Error("unset payloads should stay nil")
	}
}

func TestEnumStrings(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{DirectionIn.String(), "IN"},
		{DirectionOut.String(), "OUT"},
		{Direction(9).String(), "UNKNOWN"},
		{CategorySubscription.String(), "SUBSCRIPTION"},
		{CategoryState.String(), "STATE"},
		{CategoryError.String(), "ERROR"},
		{Category(9).String(), "UNKNOWN"},
		{OpPrimary.String(), "PRIMARY"},
		{OpJoin.String(), "JOIN"},
		{OpResubscribe.String(), "RESUBSCRIBE"},
		{SubscriptionOp(9).String(), "UNKNOWN"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("got %q, want %q", tc.got, tc.want)
		}
	}
}
