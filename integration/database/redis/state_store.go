package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/layangkit/layangkit/core/auth"
)

const (
	stateKeyPrefix  = "oauth:state:"
	defaultStateTTL = 10 * time.Minute
)

var _ auth.StateStore = (*StateStore)(nil)

// StateStore keeps OAuth state/verifier pairs in Redis with a TTL.
type StateStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client, ttl: defaultStateTTL}
}

// NewStateStoreTTL overrides the default state lifetime.
func NewStateStoreTTL(client *redis.Client, ttl time.Duration) *StateStore {
	if ttl <= 0 {
		ttl = defaultStateTTL
	}
	return &StateStore{client: client, ttl: ttl}
}

func (s *StateStore) Save(ctx context.Context, state, verifier string) error {
	return s.client.Set(ctx, stateKeyPrefix+state, verifier, s.ttl).Err()
}

// Take returns the verifier stored for the state and deletes it in the same
// round trip. GETDEL guarantees at most one caller wins a given state.
func (s *StateStore) Take(ctx context.Context, state string) (string, error) {
	verifier, err := s.client.GetDel(ctx, stateKeyPrefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrStateNotFound
		}
		return "", err
	}
	return verifier, nil
}
