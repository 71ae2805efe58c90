package chat

import (
	"strings"
	"sync"
)

// Marker is the optional prefix users type in front of channel names.
const Marker = "#"

// Normalize canonicalizes a channel name: one leading marker is
// stripped and the remainder is lowercased.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, Marker))
}

// ChannelSet is an ordered, duplicate-free collection of joined
// channels. It is safe for concurrent use; the check-then-append in Add
// happens under a single lock so concurrent joins cannot insert
// duplicates.
type ChannelSet struct {
	mu       sync.RWMutex
	channels []string
}

// NewChannelSet creates an empty channel set.
func NewChannelSet() *ChannelSet {
	return &ChannelSet{}
}

// Contains reports whether the channel is a member. The name is
// normalized before comparison.
func (s *ChannelSet) Contains(name string) bool {
	name = Normalize(name)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contains(name)
}

// contains is the lock-free scan shared by Contains and Add.
func (s *ChannelSet) contains(normalized string) bool {
	for _, ch := range s.channels {
		if ch == normalized {
			return true
		}
	}
	return false
}

// Add appends the channel if it is not already a member. Returns true
// if the set was modified.
func (s *ChannelSet) Add(name string) bool {
	name = Normalize(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contains(name) {
		return false
	}
	s.channels = append(s.channels, name)
	return true
}

// Remove deletes the channel, preserving the order of the remaining
// members. Returns true if the channel was present.
func (s *ChannelSet) Remove(name string) bool {
	name = Normalize(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ch := range s.channels {
		if ch == name {
			s.channels = append(s.channels[:i], s.channels[i+1:]...)
			return true
		}
	}
	return false
}

// Channels returns the members in insertion order. The returned slice
// is a copy.
func (s *ChannelSet) Channels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.channels))
	copy(out, s.channels)
	return out
}

// Len returns the number of members.
func (s *ChannelSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.channels)
}
