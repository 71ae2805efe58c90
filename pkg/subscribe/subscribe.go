package subscribe

import (
	"context"
)

// Resolver maps channel names to the stable identifiers the chat
// service keys subscriptions on. Implementations perform a remote
// lookup and may fail transiently.
type Resolver interface {
	// Resolve looks up identifiers for the given channel names.
	// A name absent from the returned map could not be resolved.
	Resolve(ctx context.Context, names []string, token, clientID string) (map[string]string, error)
}

// Submitter requests active chat-message subscriptions. Implementations
// wrap the remote subscription transport.
type Submitter interface {
	// SubscribeChat requests a subscription to the channel's chat for
	// the given account. It returns false on rejection; the capability
	// does not distinguish rejection causes. Errors report
	// transport-level failures and may be transient.
	SubscribeChat(ctx context.Context, channelID, accountUserID string) (bool, error)
}
