package verification_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layangkit/layangkit/core/verification"
	"github.com/layangkit/layangkit/pkg/token"
)

// memStore is a map-backed verification.Store with the conditional
// MarkUsed semantics the contract requires.
type memStore struct {
	mu     sync.Mutex
	tokens map[string]verification.Token
	now    func() time.Time

	failPut    error
	failRecent error
}

func newMemStore(now func() time.Time) *memStore {
	return &memStore{tokens: make(map[string]verification.Token), now: now}
}

func (s *memStore) GetActive(_ context.Context, userID string, kind verification.Kind, hash string) (*verification.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tok := range s.tokens {
		if tok.UserID == userID && tok.Kind == kind && tok.TokenHash == hash && tok.Active(s.now()) {
			t := tok
			return &t, nil
		}
	}
	return nil, verification.ErrNotFound
}

func (s *memStore) GetRecent(_ context.Context, userID string, kind verification.Kind, since time.Time) (*verification.Token, error) {
	if s.failRecent != nil {
		return nil, s.failRecent
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tok := range s.tokens {
		if tok.UserID == userID && tok.Kind == kind && !tok.CreatedAt.Before(since) {
			t := tok
			return &t, nil
		}
	}
	return nil, verification.ErrNotFound
}

func (s *memStore) Put(_ context.Context, tok *verification.Token) error {
	if s.failPut != nil {
		return s.failPut
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tok.ID] = *tok
	return nil
}

func (s *memStore) DeleteForUser(_ context.Context, userID string, kind verification.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, tok := range s.tokens {
		if tok.UserID == userID && tok.Kind == kind {
			delete(s.tokens, id)
		}
	}
	return nil
}

func (s *memStore) MarkUsed(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[id]
	if !ok || tok.Used {
		return false, nil
	}
	tok.Used = true
	s.tokens[id] = tok
	return true, nil
}

func (s *memStore) count(userID string, kind verification.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, tok := range s.tokens {
		if tok.UserID == userID && tok.Kind == kind {
			n++
		}
	}
	return n
}

func TestManager_Issue(t *testing.T) {
	t.Parallel()

	t.Run("returns raw secret and stores only the digest", func(t *testing.T) {
		t.Parallel()

		clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		store := newMemStore(func() time.Time { return clock })
		mgr := verification.NewManager(store, verification.WithClock(func() time.Time { return clock }))

		secret, err := mgr.Issue(context.Background(), "u1", verification.KindEmailVerification)
		require.NoError(t, err)
		assert.Len(t, secret, 64)

		tok, err := store.GetActive(context.Background(), "u1", verification.KindEmailVerification, token.Digest(secret))
		require.NoError(t, err)
		assert.Equal(t, token.Digest(secret), tok.TokenHash)
		assert.NotEqual(t, secret, tok.TokenHash)
		assert.True(t, tok.ExpiresAt.Equal(clock.Add(verification.DefaultVerificationTTL)))
	})

	t.Run("reset tokens get the shorter TTL", func(t *testing.T) {
		t.Parallel()

		clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		store := newMemStore(func() time.Time { return clock })
		mgr := verification.NewManager(store, verification.WithClock(func() time.Time { return clock }))

		secret, err := mgr.Issue(context.Background(), "u1", verification.KindPasswordReset)
		require.NoError(t, err)

		tok, err := store.GetActive(context.Background(), "u1", verification.KindPasswordReset, token.Digest(secret))
		require.NoError(t, err)
		assert.True(t, tok.ExpiresAt.Equal(clock.Add(verification.DefaultResetTTL)))
	})

	t.Run("supersedes earlier tokens of the same kind", func(t *testing.T) {
		t.Parallel()

		clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		store := newMemStore(func() time.Time { return clock })
		mgr := verification.NewManager(store,
			verification.WithClock(func() time.Time { return clock }),
			verification.WithReissueInterval(0))

		first, err := mgr.Issue(context.Background(), "u1", verification.KindEmailVerification)
		require.NoError(t, err)

		second, err := mgr.Issue(context.Background(), "u1", verification.KindEmailVerification)
		require.NoError(t, err)

		assert.Equal(t, 1, store.count("u1", verification.KindEmailVerification))

		// The first secret no longer validates; the second does.
		_, err = mgr.Consume(context.Background(), "u1", verification.KindEmailVerification, first)
		assert.ErrorIs(t, err, verification.ErrInvalidToken)

		_, err = mgr.Consume(context.Background(), "u1", verification.KindEmailVerification, second)
		assert.NoError(t, err)
	})

	t.Run("rejects reissue within the interval", func(t *testing.T) {
		t.Parallel()

		clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		store := newMemStore(func() time.Time { return clock })
		mgr := verification.NewManager(store, verification.WithClock(func() time.Time { return clock }))

		_, err := mgr.Issue(context.Background(), "u1", verification.KindEmailVerification)
		require.NoError(t, err)

		clock = clock.Add(30 * time.Second)
		_, err = mgr.Issue(context.Background(), "u1", verification.KindEmailVerification)
		assert.ErrorIs(t, err, verification.ErrRateLimited)

		// After the interval elapses the reissue succeeds.
		clock = clock.Add(31 * time.Second)
		_, err = mgr.Issue(context.Background(), "u1", verification.KindEmailVerification)
		assert.NoError(t, err)
	})

	t.Run("kinds are rate limited independently", func(t *testing.T) {
		t.Parallel()

		clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		store := newMemStore(func() time.Time { return clock })
		mgr := verification.NewManager(store, verification.WithClock(func() time.Time { return clock }))

		_, err := mgr.Issue(context.Background(), "u1", verification.KindEmailVerification)
		require.NoError(t, err)

		_, err = mgr.Issue(context.Background(), "u1", verification.KindPasswordReset)
		assert.NoError(t, err)
	})

	t.Run("propagates store put failure", func(t *testing.T) {
		t.Parallel()

		clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		store := newMemStore(func() time.Time { return clock })
		store.failPut = errors.New("insert failed")
		mgr := verification.NewManager(store, verification.WithClock(func() time.Time { return clock }))

		_, err := mgr.Issue(context.Background(), "u1", verification.KindEmailVerification)
		require.Error(t, err)
		assert.ErrorIs(t, err, verification.ErrIssueToken)
	})
}

func TestManager_Consume(t *testing.T) {
	t.Parallel()

	t.Run("succeeds exactly once", func(t *testing.T) {
		t.Parallel()

		clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		store := newMemStore(func() time.Time { return clock })
		mgr := verification.NewManager(store, verification.WithClock(func() time.Time { return clock }))

		secret, err := mgr.Issue(context.Background(), "u1", verification.KindEmailVerification)
		require.NoError(t, err)

		tok, err := mgr.Consume(context.Background(), "u1", verification.KindEmailVerification, secret)
		require.NoError(t, err)
		assert.True(t, tok.Used)

		// The row still exists but is used; the same secret fails now.
		_, err = mgr.Consume(context.Background(), "u1", verification.KindEmailVerification, secret)
		assert.ErrorIs(t, err, verification.ErrInvalidToken)
		assert.Equal(t, 1, store.count("u1", verification.KindEmailVerification))
	})

	t.Run("rejects empty token", func(t *testing.T) {
		t.Parallel()

		store := newMemStore(time.Now)
		mgr := verification.NewManager(store)

		_, err := mgr.Consume(context.Background(), "u1", verification.KindEmailVerification, "")
		assert.ErrorIs(t, err, verification.ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		t.Parallel()

		clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		store := newMemStore(func() time.Time { return clock })
		mgr := verification.NewManager(store, verification.WithClock(func() time.Time { return clock }))

		secret, err := mgr.Issue(context.Background(), "u1", verification.KindPasswordReset)
		require.NoError(t, err)

		clock = clock.Add(verification.DefaultResetTTL + time.Minute)
		_, err = mgr.Consume(context.Background(), "u1", verification.KindPasswordReset, secret)
		assert.ErrorIs(t, err, verification.ErrInvalidToken)
	})

	t.Run("rejects token of wrong user", func(t *testing.T) {
		t.Parallel()

		clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		store := newMemStore(func() time.Time { return clock })
		mgr := verification.NewManager(store, verification.WithClock(func() time.Time { return clock }))

		secret, err := mgr.Issue(context.Background(), "u1", verification.KindEmailVerification)
		require.NoError(t, err)

		_, err = mgr.Consume(context.Background(), "u2", verification.KindEmailVerification, secret)
		assert.ErrorIs(t, err, verification.ErrInvalidToken)
	})

	t.Run("concurrent consumes let only one through", func(t *testing.T) {
		t.Parallel()

		clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		store := newMemStore(func() time.Time { return clock })
		mgr := verification.NewManager(store, verification.WithClock(func() time.Time { return clock }))

		secret, err := mgr.Issue(context.Background(), "u1", verification.KindEmailVerification)
		require.NoError(t, err)

		const n = 8
		var wg sync.WaitGroup
		results := make([]error, n)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, results[i] = mgr.Consume(context.Background(), "u1", verification.KindEmailVerification, secret)
			}()
		}
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, verification.ErrInvalidToken)
			}
		}
		assert.Equal(t, 1, succeeded)
	})
}
