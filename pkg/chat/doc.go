// Package chat holds the channel naming model shared across the client.
//
// Channel names are case-insensitive and may be written with a leading
// "#" marker. Normalize strips the marker and lowercases, and every
// stored or compared name is normalized first, so "#Foo", "Foo" and
// "foo" all refer to the same channel.
//
// A ChannelSet tracks the channels an account has joined. It preserves
// insertion order so that bulk resubscription after a reconnect walks
// channels deterministically. Set cardinality is small (tens of
// channels), so membership checks are a linear scan.
package chat
