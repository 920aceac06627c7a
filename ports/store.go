package ports

import (
	"context"
	"time"

	"github.com/luckyroll/walletgate/core"
)

// ChallengeStore holds outstanding challenges between issuance and
// verification. It is the only shared mutable state in the service.
type ChallengeStore interface {
	// Put stores a challenge under its ID with the given TTL.
	Put(ctx context.Context, id string, challenge core.Challenge, ttl time.Duration) error

	// TakeOnce atomically retrieves and deletes the challenge with the given
	// ID. Concurrent callers racing on the same ID see exactly one success;
	// the rest, along with callers of absent or expired IDs, get
	// core.ErrChallengeNotFound. Infrastructure failures are reported as
	// core.ErrStoreUnavailable.
	TakeOnce(ctx context.Context, id string) (core.Challenge, error)
}
