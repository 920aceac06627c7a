package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyroll/walletgate/core"
)

func testChallenge(id string) core.Challenge {
	now := time.Now()
	return core.Challenge{
		ID:        id,
		PublicKey: "abc123",
		Nonce:     "Sign this message to verify your wallet ownership: nonce",
		IssuedAt:  now,
		ExpiresAt: now.Add(5 * time.Minute),
	}
}

func TestMemoryStore_PutAndTakeOnce(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	want := testChallenge("ch-1")
	require.NoError(t, s.Put(context.Background(), want.ID, want, 5*time.Minute))

	got, err := s.TakeOnce(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.PublicKey, got.PublicKey)
	assert.Equal(t, want.Nonce, got.Nonce)
}

func TestMemoryStore_TakeOnce_ConsumesEntry(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	ch := testChallenge("ch-1")
	require.NoError(t, s.Put(context.Background(), ch.ID, ch, 5*time.Minute))

	_, err := s.TakeOnce(context.Background(), ch.ID)
	require.NoError(t, err)

	// Second take must fail: the challenge is one-shot.
	_, err = s.TakeOnce(context.Background(), ch.ID)
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestMemoryStore_TakeOnce_Unknown(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	_, err := s.TakeOnce(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)
}

func TestMemoryStore_TakeOnce_Expired(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	ch := testChallenge("ch-1")
	require.NoError(t, s.Put(context.Background(), ch.ID, ch, 10*time.Millisecond))

	time.Sleep(20 * time.Millisecond)

	// Expired entries are indistinguishable from absent ones.
	_, err := s.TakeOnce(context.Background(), ch.ID)
	assert.ErrorIs(t, err, core.ErrChallengeNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_TakeOnce_Concurrent(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	ch := testChallenge("ch-race")
	require.NoError(t, s.Put(context.Background(), ch.ID, ch, 5*time.Minute))

	const callers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		notFound  int
	)

	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			_, err := s.TakeOnce(context.Background(), ch.ID)
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				successes++
			case core.ErrChallengeNotFound:
				notFound++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// Exactly one racing caller may consume the challenge.
	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, notFound)
}

func TestMemoryStore_SweepRemovesExpired(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	require.NoError(t, s.Put(context.Background(), "old", testChallenge("old"), time.Millisecond))
	require.NoError(t, s.Put(context.Background(), "fresh", testChallenge("fresh"), time.Hour))

	time.Sleep(5 * time.Millisecond)
	s.removeExpired()

	assert.Equal(t, 1, s.Len())

	_, err := s.TakeOnce(context.Background(), "fresh")
	assert.NoError(t, err)
}
