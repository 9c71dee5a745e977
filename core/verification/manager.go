package verification

import (
	"context"
	"errors"
	"time"

	"github.com/layangkit/layangkit/pkg/token"
)

// Manager issues and consumes verification and reset tokens. Stateless
// apart from its configuration; safe for concurrent use.
type Manager struct {
	store           Store
	ttls            map[Kind]time.Duration
	reissueInterval time.Duration
	now             func() time.Time
}

// NewManager creates a token manager over the given store.
// Defaults: 24h verification TTL, 1h reset TTL, 60s reissue interval.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		ttls: map[Kind]time.Duration{
			KindEmailVerification: DefaultVerificationTTL,
			KindPasswordReset:     DefaultResetTTL,
		},
		reissueInterval: DefaultReissueInterval,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Issue creates a new token of the given kind for userID and returns the
// raw secret for inclusion in an outbound link. This is the only point
// where the secret exists outside its digest; the manager does not send
// the email itself.
//
// Any earlier tokens of the kind are deleted first, so the previous
// secret stops validating the moment a new one is issued. Issuing again
// within the reissue interval fails with ErrRateLimited.
func (m *Manager) Issue(ctx context.Context, userID string, kind Kind) (string, error) {
	now := m.now()

	if m.reissueInterval > 0 {
		_, err := m.store.GetRecent(ctx, userID, kind, now.Add(-m.reissueInterval))
		switch {
		case err == nil:
			return "", ErrRateLimited
		case !errors.Is(err, ErrNotFound):
			return "", errors.Join(ErrIssueToken, err)
		}
	}

	if err := m.store.DeleteForUser(ctx, userID, kind); err != nil {
		return "", errors.Join(ErrIssueToken, err)
	}

	secret, err := token.NewSecret()
	if err != nil {
		return "", errors.Join(ErrIssueToken, err)
	}

	tok := Token{
		ID:        token.NewID(),
		UserID:    userID,
		Kind:      kind,
		TokenHash: token.Digest(secret),
		ExpiresAt: now.Add(m.ttls[kind]),
		Used:      false,
		CreatedAt: now,
	}

	if err := m.store.Put(ctx, &tok); err != nil {
		return "", errors.Join(ErrIssueToken, err)
	}

	return secret, nil
}

// Consume validates the presented raw secret for userID and marks the
// matching token used. Returns ErrInvalidToken when no active token
// matches or when another call consumed it first; the caller cannot tell
// those cases apart. The associated effect must run in the same
// transaction as this call.
func (m *Manager) Consume(ctx context.Context, userID string, kind Kind, raw string) (*Token, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	tok, err := m.store.GetActive(ctx, userID, kind, token.Digest(raw))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	changed, err := m.store.MarkUsed(ctx, tok.ID)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Lost the race against a concurrent consume.
		return nil, ErrInvalidToken
	}

	tok.Used = true
	return tok, nil
}
