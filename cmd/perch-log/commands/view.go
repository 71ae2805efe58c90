// Package commands implements the perch-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/perch-chat/perch-go/pkg/log"
)

// ViewOptions specifies criteria for filtering events in the view
// command.
type ViewOptions struct {
	Direction string
	Category  string
	Account   string
	Channel   string
}

// RunView reads the log file and writes matching events to w in a
// human-readable format.
func RunView(path string, opts ViewOptions, w io.Writer) error {
	filter := log.Filter{
		Account: opts.Account,
		Channel: opts.Channel,
	}

	if opts.Direction != "" {
		d, err := parseDirection(opts.Direction)
		if err != nil {
			return err
		}
		filter.Direction = &d
	}
	if opts.Category != "" {
		c, err := parseCategory(opts.Category)
		if err != nil {
			return err
		}
		filter.Category = &c
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	connID := shortenConnID(event.ConnectionID)
	dir := event.Direction.String()

	var typeLabel string
	switch {
	case event.Subscription != nil:
		typeLabel = event.Subscription.Op.String()
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [conn:%s] %-3s %s %s\n", ts, connID, dir, event.Category, typeLabel)

	if event.Account != "" {
		fmt.Fprintf(w, "  account: %s\n", event.Account)
	}
	if event.Channel != "" {
		fmt.Fprintf(w, "  channel: #%s\n", event.Channel)
	}

	switch {
	case event.Subscription != nil:
		formatSubscriptionDetails(w, event.Subscription)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

func formatSubscriptionDetails(w io.Writer, sub *log.SubscriptionEvent) {
	outcome := "rejected"
	if sub.Accepted {
		outcome = "accepted"
	}
	fmt.Fprintf(w, "  outcome: %s\n", outcome)
	if sub.ChannelID != "" {
		fmt.Fprintf(w, "  channelID: %s\n", sub.ChannelID)
	}
	if sub.Attempt > 0 {
		fmt.Fprintf(w, "  attempt: %d\n", sub.Attempt)
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  transition: %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  state: %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintf(w, "  error: %s\n", e.Message)
	if e.Context != "" {
		fmt.Fprintf(w, "  context: %s\n", e.Context)
	}
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	if id == "" {
		return "--------"
	}
	return id
}

func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction %q (want in or out)", s)
	}
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "subscription", "sub":
		return log.CategorySubscription, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category %q (want subscription, state, or error)", s)
	}
}
