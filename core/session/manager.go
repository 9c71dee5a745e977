package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/layangkit/layangkit/core/user"
	"github.com/layangkit/layangkit/pkg/logger"
	"github.com/layangkit/layangkit/pkg/token"
)

// Manager handles the session lifecycle. It holds no mutable state of its
// own and is safe for arbitrary concurrent use as long as the store's
// operations are individually atomic.
type Manager struct {
	store         Store
	users         UserStore
	ttl           time.Duration
	renewalWindow time.Duration
	now           func() time.Time
	log           *slog.Logger
}

// NewManager creates a session manager over the given stores.
// Defaults: 30-day TTL, 15-day renewal window, discarded logs.
func NewManager(store Store, users UserStore, opts ...Option) *Manager {
	m := &Manager{
		store:         store,
		users:         users,
		ttl:           DefaultTTL,
		renewalWindow: DefaultRenewalWindow,
		now:           time.Now,
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithLogger sets the logger used for degraded-validation reporting.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log.With(logger.Component("session"))
		}
	}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create generates a new session for userID, valid for a full TTL.
// The returned session is marked Fresh so the caller issues the cookie.
// Store failures propagate: the caller must not assume the session exists.
func (m *Manager) Create(ctx context.Context, userID string) (Session, error) {
	id, err := token.NewSecret()
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: m.now().Add(m.ttl),
		Fresh:     true,
	}

	if err := m.store.Put(ctx, &sess); err != nil {
		return Session{}, errors.Join(ErrCreateSession, err)
	}

	return sess, nil
}

// Validate resolves a presented session id to its user and session.
//
// It returns (nil, nil) for an empty id, an unknown id, an expired session
// (which is purged as a side effect), a session whose owner no longer
// exists, and for any store failure along the way. Callers treat (nil, nil)
// uniformly as "not authenticated"; nothing here distinguishes the branches.
//
// A live session whose remaining lifetime has dropped below the renewal
// window is extended to now+TTL and returned with Fresh=true so the
// transport re-issues the cookie with the new expiry.
func (m *Manager) Validate(ctx context.Context, sessionID string) (*user.User, *Session) {
	if sessionID == "" {
		return nil, nil
	}

	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.log.LogAttrs(ctx, slog.LevelWarn, "session lookup degraded to unauthenticated",
				logger.Event("validate"), logger.Error(err))
		}
		return nil, nil
	}

	// Fresh is derived per validation, never trusted from storage.
	sess.Fresh = false

	now := m.now()
	if now.After(sess.ExpiresAt) {
		// Lazy purge; there is no background sweeper.
		if err := m.store.Delete(ctx, sess.ID); err != nil {
			m.log.LogAttrs(ctx, slog.LevelWarn, "failed to purge expired session",
				logger.Event("validate"), logger.Error(err))
		}
		return nil, nil
	}

	if sess.ExpiresIn(now) < m.renewalWindow {
		sess.ExpiresAt = now.Add(m.ttl)
		if err := m.store.Put(ctx, sess); err != nil {
			m.log.LogAttrs(ctx, slog.LevelWarn, "session renewal degraded to unauthenticated",
				logger.Event("renew"), logger.Error(err))
			return nil, nil
		}
		sess.Fresh = true
	}

	usr, err := m.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			m.log.LogAttrs(ctx, slog.LevelWarn, "session user lookup degraded to unauthenticated",
				logger.Event("validate"), logger.UserID(sess.UserID), logger.Error(err))
		}
		return nil, nil
	}

	return usr, sess
}

// Invalidate deletes the session row. Idempotent: invalidating an unknown
// or already-deleted session succeeds. Store failures propagate.
func (m *Manager) Invalidate(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := m.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// InvalidateAll deletes every session belonging to userID. Used after
// security-sensitive events such as a password reset.
func (m *Manager) InvalidateAll(ctx context.Context, userID string) error {
	if err := m.store.DeleteForUser(ctx, userID); err != nil {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}
