// Package service ties the per-account pieces of the chat client
// together. An AccountSession owns one account's connection manager,
// its subscription coordinator, and its joined-channel set, and drives
// the lifecycle: connect, subscribe to the primary channel, reach
// Joined, and after any reconnect re-establish every channel
// subscription before reporting Joined again.
//
// Each session stamps a UUID connection ID into the structured event
// log so that a log reader can correlate events across reconnects.
package service
