package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/perch-chat/perch-go/pkg/log"
)

func writeTestLog(t *testing.T, path string, events []log.Event) {
	t.Helper()
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}
	defer logger.Close()
	for _, event := range events {
		logger.Log(event)
	}
}

func sampleEvents() []log.Event {
	base := time.Date(2026, 8, 29, 10, 15, 32, 123456000, time.UTC)
	return []log.Event{
		{
			Timestamp:    base,
			ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
			Direction:    log.DirectionIn,
			Category:     log.CategoryState,
			Account:      "alice",
			StateChange: &log.StateChangeEvent{
				OldState: "DISCONNECTED",
				NewState: "CONNECTING",
			},
		},
		{
			Timestamp:    base.Add(time.Second),
			ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
			Direction:    log.DirectionOut,
			Category:     log.CategorySubscription,
			Account:      "alice",
			Channel:      "lobby",
			Subscription: &log.SubscriptionEvent{
				Op:       log.OpPrimary,
				Accepted: true,
			},
		},
		{
			Timestamp:    base.Add(2 * time.Second),
			ConnectionID: "def67890-1234-5678-9012-34567890abcd",
			Direction:    log.DirectionOut,
			Category:     log.CategoryError,
			Account:      "bob",
			Error: &log.ErrorEventData{
				Message: "connection refused",
				Context: "connect",
			},
		},
	}
}

func TestFormatSubscriptionEvent(t *testing.T) {
	event := sampleEvents()[1]

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "2026-08-29T10:15:33.123456Z") {
		t.Errorf("expected timestamp, got: %s", output)
	}
	if !strings.Contains(output, "[conn:abc12345]") {
		t.Errorf("expected shortened connection ID, got: %s", output)
	}
	if !strings.Contains(output, "OUT") {
		t.Errorf("expected OUT direction, got: %s", output)
	}
	if !strings.Contains(output, "PRIMARY") {
		t.Errorf("expected PRIMARY label, got: %s", output)
	}
	if !strings.Contains(output, "channel: #lobby") {
		t.Errorf("expected channel, got: %s", output)
	}
	if !strings.Contains(output, "outcome: accepted") {
		t.Errorf("expected outcome, got: %s", output)
	}
}

func TestFormatStateChangeEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[0])
	output := buf.String()

	if !strings.Contains(output, "transition: DISCONNECTED -> CONNECTING") {
		t.Errorf("expected transition, got: %s", output)
	}
}

func TestRunView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.plog")
	writeTestLog(t, path, sampleEvents())

	t.Run("all events", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RunView(path, ViewOptions{}, &buf); err != nil {
			t.Fatalf("RunView failed: %v", err)
		}
		output := buf.String()
		for _, want := range []string{"State", "PRIMARY", "Error"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output, got: %s", want, output)
			}
		}
	})

	t.Run("category filter", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RunView(path, ViewOptions{Category: "subscription"}, &buf); err != nil {
			t.Fatalf("RunView failed: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "PRIMARY") {
			t.Errorf("expected subscription event, got: %s", output)
		}
		if strings.Contains(output, "connection refused") {
			t.Errorf("error event should be filtered out, got: %s", output)
		}
	})

	t.Run("account filter", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RunView(path, ViewOptions{Account: "bob"}, &buf); err != nil {
			t.Fatalf("RunView failed: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "connection refused") {
			t.Errorf("expected bob's error event, got: %s", output)
		}
		if strings.Contains(output, "PRIMARY") {
			t.Errorf("alice's events should be filtered out, got: %s", output)
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		if err := RunView(path, ViewOptions{Category: "bogus"}, &bytes.Buffer{}); err == nil {
			t.Error("expected error for invalid category")
		}
	})
}

func TestRunFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.plog")
	out := filepath.Join(dir, "filtered.plog")
	writeTestLog(t, path, sampleEvents())

	if err := RunFilter(path, FilterOptions{Output: out, Account: "alice"}); err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	reader, err := log.NewReader(out)
	if err != nil {
		t.Fatalf("failed to open filtered file: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err != nil {
			break
		}
		if event.Account != "alice" {
			t.Errorf("unexpected account in filtered output: %s", event.Account)
		}
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 filtered events, got %d", count)
	}
}

func TestRunStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.plog")
	writeTestLog(t, path, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Total Events: 3",
		"Connections: 2",
		"1 accepted, 0 rejected",
		"Errors: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestRunExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.plog")
	out := filepath.Join(dir, "events.jsonl")
	writeTestLog(t, path, sampleEvents())

	if err := RunExport(path, out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 JSONL lines, got %d", len(lines))
	}
}
