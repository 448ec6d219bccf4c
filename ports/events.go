package ports

import "context"

// EventPublisher notifies other components about auth lifecycle events.
// Publish failures must never fail the request that triggered them.
type EventPublisher interface {
	PublishLogin(ctx context.Context, address string) error
	PublishNonceRevoked(ctx context.Context, address string) error
}
