package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luckyroll/walletgate/core"
	"github.com/luckyroll/walletgate/ports"
)

// RedisStore is a Redis implementation of the ChallengeStore interface.
// Required for horizontally scaled deployments, where the issuing and
// verifying instance may differ.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "walletgate:challenge:",
	}
}

var _ ports.ChallengeStore = (*RedisStore)(nil)

// Put stores a challenge as JSON with the given TTL.
func (s *RedisStore) Put(ctx context.Context, id string, challenge core.Challenge, ttl time.Duration) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to encode challenge: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+id, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

// TakeOnce retrieves and deletes the challenge with the given ID using
// GETDEL, which is atomic server-side: racing callers see exactly one
// success. Expiry is handled by Redis key TTLs, so expired challenges are
// indistinguishable from absent ones.
func (s *RedisStore) TakeOnce(ctx context.Context, id string) (core.Challenge, error) {
	payload, err := s.client.GetDel(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return core.Challenge{}, core.ErrChallengeNotFound
		}
		return core.Challenge{}, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	var challenge core.Challenge
	if err := json.Unmarshal([]byte(payload), &challenge); err != nil {
		return core.Challenge{}, fmt.Errorf("failed to decode challenge: %w", err)
	}
	return challenge, nil
}
