package ports

import "context"

// EventPublisher publishes auth lifecycle events for downstream consumers
// (audit trails, other instances). Publishing is best-effort: failures are
// logged, never surfaced to the client.
type EventPublisher interface {
	PublishLogin(ctx context.Context, publicKey string, sessionID string) error
	PublishLogout(ctx context.Context, publicKey string, sessionID string) error
}
