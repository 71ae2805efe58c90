// Package interactive provides the interactive command-line interface
// for perch-chat.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/perch-chat/perch-go/pkg/service"
)

// Simulator controls the simulated chat service backing the shell.
// Nil disables the sim command group.
type Simulator interface {
	// AddChannel registers a channel and returns its id.
	AddChannel(name string) string

	// Deny makes subscriptions to a channel be rejected.
	Deny(name string)

	// FailNextDials makes the next n dial attempts fail.
	FailNextDials(n int)
}

// Shell handles interactive mode for perch-chat.
type Shell struct {
	client *service.Client
	sim    Simulator
	rl     *readline.Instance

	// Currently selected account.
	current string
}

// New creates a new interactive shell.
func New(client *service.Client, sim Simulator) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "perch> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := &Shell{
		client: client,
		sim:    sim,
		rl:     rl,
	}
	if accounts := client.Accounts(); len(accounts) > 0 {
		s.current = accounts[0]
	}
	return s, nil
}

// Stdout returns a writer that properly coordinates with the readline
// input. Use this for log output to avoid interfering with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "accounts", "a":
			s.cmdAccounts()

		case "use", "u":
			s.cmdUse(args)

		case "state", "st":
			s.cmdState()

		case "join", "j":
			s.cmdJoin(ctx, args)

		case "part", "p":
			s.cmdPart(args)

		case "channels", "c":
			s.cmdChannels()

		case "resubscribe", "resub":
			s.cmdResubscribe(ctx)

		case "drop":
			s.cmdDrop()

		case "sim":
			s.cmdSim(args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Perch Chat Commands:
  Accounts:
    accounts           - List accounts and their states
    use <account>      - Select the active account
    state              - Show the active account's connection state

  Channels:
    join <channel>     - Join a channel
    part <channel>     - Leave a channel (no longer resubscribed)
    channels           - List joined channels
    resubscribe        - Re-establish every channel subscription

  Connection:
    drop               - Simulate a connection loss (auto-reconnects)

  Simulation:
    sim add <channel>  - Register a channel on the simulated server
    sim deny <channel> - Make a channel reject subscriptions
    sim fail <n>       - Fail the next n dial attempts

  General:
    help               - Show this help
    quit               - Exit`)
}

// session returns the active account's session, printing a hint when
// none is selected.
func (s *Shell) session() *service.AccountSession {
	sess := s.client.Session(s.current)
	if sess == nil {
		fmt.Fprintln(s.rl.Stdout(), "No account selected (use <account>)")
	}
	return sess
}

func (s *Shell) cmdAccounts() {
	for _, name := range s.client.Accounts() {
		marker := " "
		if name == s.current {
			marker = "*"
		}
		sess := s.client.Session(name)
		fmt.Fprintf(s.rl.Stdout(), "%s %-16s %-12s %d channels\n",
			marker, name, sess.State(), len(sess.Channels()))
	}
}

func (s *Shell) cmdUse(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: use <account>")
		return
	}
	if s.client.Session(args[0]) == nil {
		fmt.Fprintf(s.rl.Stdout(), "Unknown account: %s\n", args[0])
		return
	}
	s.current = args[0]
	fmt.Fprintf(s.rl.Stdout(), "Active account: %s\n", s.current)
}

func (s *Shell) cmdState() {
	sess := s.session()
	if sess == nil {
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Account:       %s\n", sess.Account())
	fmt.Fprintf(s.rl.Stdout(), "State:         %s\n", sess.State())
	fmt.Fprintf(s.rl.Stdout(), "Connection ID: %s\n", sess.ConnectionID())
}

func (s *Shell) cmdJoin(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: join <channel>")
		return
	}
	sess := s.session()
	if sess == nil {
		return
	}
	if sess.Join(ctx, args[0]) {
		fmt.Fprintf(s.rl.Stdout(), "Joined %s\n", args[0])
	} else {
		fmt.Fprintf(s.rl.Stdout(), "Could not join %s\n", args[0])
	}
}

func (s *Shell) cmdPart(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: part <channel>")
		return
	}
	sess := s.session()
	if sess == nil {
		return
	}
	if sess.Part(args[0]) {
		fmt.Fprintf(s.rl.Stdout(), "Left %s\n", args[0])
	} else {
		fmt.Fprintf(s.rl.Stdout(), "Not in %s\n", args[0])
	}
}

func (s *Shell) cmdChannels() {
	sess := s.session()
	if sess == nil {
		return
	}
	channels := sess.Channels()
	if len(channels) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No channels joined")
		return
	}
	for _, channel := range channels {
		fmt.Fprintf(s.rl.Stdout(), "  #%s\n", channel)
	}
}

func (s *Shell) cmdResubscribe(ctx context.Context) {
	sess := s.session()
	if sess == nil {
		return
	}
	if sess.Resubscribe(ctx) {
		fmt.Fprintln(s.rl.Stdout(), "All channel subscriptions re-established")
	} else {
		fmt.Fprintln(s.rl.Stdout(), "Resubscription incomplete (see log)")
	}
}

func (s *Shell) cmdDrop() {
	sess := s.session()
	if sess == nil {
		return
	}
	sess.ConnectionLost()
	fmt.Fprintln(s.rl.Stdout(), "Connection dropped, reconnecting...")
}

func (s *Shell) cmdSim(args []string) {
	if s.sim == nil {
		fmt.Fprintln(s.rl.Stdout(), "No simulated server attached")
		return
	}
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: sim add|deny|fail ...")
		return
	}

	switch args[0] {
	case "add":
		if len(args) != 2 {
			fmt.Fprintln(s.rl.Stdout(), "Usage: sim add <channel>")
			return
		}
		id := s.sim.AddChannel(args[1])
		fmt.Fprintf(s.rl.Stdout(), "Channel %s registered as %s\n", args[1], id)

	case "deny":
		if len(args) != 2 {
			fmt.Fprintln(s.rl.Stdout(), "Usage: sim deny <channel>")
			return
		}
		s.sim.Deny(args[1])
		fmt.Fprintf(s.rl.Stdout(), "Channel %s now rejects subscriptions\n", args[1])

	case "fail":
		if len(args) != 2 {
			fmt.Fprintln(s.rl.Stdout(), "Usage: sim fail <n>")
			return
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			fmt.Fprintln(s.rl.Stdout(), "sim fail: n must be a non-negative integer")
			return
		}
		s.sim.FailNextDials(n)
		fmt.Fprintf(s.rl.Stdout(), "Next %d dial attempts will fail\n", n)

	default:
		fmt.Fprintf(s.rl.Stdout(), "Unknown sim command: %s\n", args[0])
	}
}
