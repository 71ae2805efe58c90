// Command perch-chat is an interactive multi-account chat client.
//
// It connects each configured account, subscribes to its primary
// channel, and keeps channel subscriptions alive across reconnects.
// Without a configuration file a single simulated account is used so
// the client can be explored without credentials.
//
// Usage:
//
//	perch-chat [flags]
//
// Flags:
//
//	-config string     Configuration file path (YAML)
//	-event-log string  Event log file path (overrides config)
//	-log-level string  Log level: debug, info, warn, error (default "info")
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/perch-chat/perch-go/cmd/perch-chat/interactive"
	"github.com/perch-chat/perch-go/pkg/config"
	"github.com/perch-chat/perch-go/pkg/service"
)

var (
	configPath string
	eventLog   string
	logLevel   string
)

func init() {
	flag.StringVar(&configPath, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&eventLog, "event-log", "", "Event log file path (overrides config)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	logger := setupLogging(logLevel)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if eventLog != "" {
		cfg.EventLogPath = eventLog
	}

	// The simulated server stands in for the chat service. Every
	// configured primary channel exists on it.
	var channels []string
	for _, acct := range cfg.Accounts {
		if acct.PrimaryChannel != "" {
			channels = append(channels, acct.PrimaryChannel)
		}
	}
	sim := newSimServer(channels)

	client, err := service.NewClient(cfg, service.ClientDeps{
		Dial:       sim.Dial,
		Resolver:   sim,
		Submitter:  sim,
		Logger:     logger,
		RemoteAddr: "sim.perch.chat:443",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := client.StartAll(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	logger.Info("client started", "accounts", len(cfg.Accounts))

	shell, err := interactive.New(client, sim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create shell: %v\n", err)
		os.Exit(1)
	}
	shell.Run(ctx, cancel)
}

// loadConfig reads the configured file, or falls back to a single
// simulated account.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return &config.Config{
		Accounts: []config.Account{{
			Name:           "demo",
			UserID:         "demo-user",
			Token:          "demo-token",
			ClientID:       "perch-chat",
			PrimaryChannel: "lobby",
		}},
	}, nil
}

func setupLogging(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
