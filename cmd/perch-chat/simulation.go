package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// simServer is an in-process stand-in for the chat service. It backs
// the resolver, submitter, and dial function so the client can be
// exercised without a network.
type simServer struct {
	mu sync.Mutex

	// Channels known to the server, name -> id.
	known map[string]string

	// Channel IDs that reject subscriptions.
	denied map[string]bool

	// Remaining dial attempts that should fail.
	failDials int

	latency time.Duration
	nextID  int
}

func newSimServer(channels []string) *simServer {
	s := &simServer{
		known:   make(map[string]string),
		denied:  make(map[string]bool),
		latency: 50 * time.Millisecond,
	}
	for _, name := range channels {
		s.AddChannel(name)
	}
	return s
}

func (s *simServer) AddChannel(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.ToLower(strings.TrimPrefix(name, "#"))
	if id, ok := s.known[name]; ok {
		return id
	}
	s.nextID++
	id := fmt.Sprintf("sim-%04d", s.nextID)
	s.known[name] = id
	return id
}

func (s *simServer) Deny(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.known[strings.ToLower(strings.TrimPrefix(name, "#"))]; ok {
		s.denied[id] = true
	}
}

// failNextDials makes the next n dial attempts fail, exercising the
// reconnect backoff.
func (s *simServer) FailNextDials(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDials = n
}

// Dial implements connection.DialFunc.
func (s *simServer) Dial(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.latency):
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDials > 0 {
		s.failDials--
		return fmt.Errorf("simulated dial failure (%d more)", s.failDials)
	}
	return nil
}

// Resolve implements subscribe.Resolver. Unknown channels are simply
// absent from the result, matching a lookup API that returns only
// matches.
func (s *simServer) Resolve(ctx context.Context, names []string, token, clientID string) (map[string]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.latency):
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(names))
	for _, name := range names {
		if id, ok := s.known[name]; ok {
			out[name] = id
		}
	}
	return out, nil
}

// SubscribeChat implements subscribe.Submitter.
func (s *simServer) SubscribeChat(ctx context.Context, channelID, accountUserID string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-time.After(s.latency):
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.denied[channelID], nil
}
