package store

import (
	"context"
	"sync"
	"time"

	"github.com/luckyroll/walletgate/core"
	"github.com/luckyroll/walletgate/ports"
)

const sweepInterval = time.Minute

type memoryEntry struct {
	challenge core.Challenge
	expiresAt time.Time
}

// MemoryStore is an in-process implementation of the ChallengeStore
// interface. Suitable for tests and single-instance deployments only: the
// issuing and verifying instance must be the same process.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	done    chan struct{}
	closed  bool
}

// NewMemoryStore creates a new in-memory store. A background goroutine
// sweeps expired entries until Close is called; the sweep only removes
// entries that are already unobservable through TakeOnce.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

var _ ports.ChallengeStore = (*MemoryStore)(nil)

// Put stores a challenge under its ID with the given TTL.
func (s *MemoryStore) Put(ctx context.Context, id string, challenge core.Challenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = memoryEntry{
		challenge: challenge,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// TakeOnce retrieves and deletes the challenge with the given ID under a
// single lock acquisition, so racing callers see exactly one success.
// Expired entries are deleted and reported as not found.
func (s *MemoryStore) TakeOnce(ctx context.Context, id string) (core.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return core.Challenge{}, core.ErrChallengeNotFound
	}
	delete(s.entries, id)

	if time.Now().After(entry.expiresAt) {
		return core.Challenge{}, core.ErrChallengeNotFound
	}
	return entry.challenge, nil
}

// Len returns the number of entries currently held, including expired ones
// not yet swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the background sweep goroutine. Safe to call multiple times.
func (s *MemoryStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		close(s.done)
		s.closed = true
	}
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
