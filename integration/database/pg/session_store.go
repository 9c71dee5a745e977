package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/layangkit/layangkit/core/session"
)

var _ session.Store = (*SessionStore)(nil)

// SessionStore implements session.Store over PostgreSQL. The Fresh flag is
// derived by the manager and never persisted.
type SessionStore struct {
	pool *pgxpool.Pool
}

func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	var sess session.Session
	err := conn(ctx, s.pool).QueryRow(ctx,
		`SELECT id, user_id, expires_at FROM sessions WHERE id = $1`, id).
		Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Put(ctx context.Context, sess *session.Session) error {
	_, err := conn(ctx, s.pool).Exec(ctx, `
		INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET expires_at = EXCLUDED.expires_at`,
		sess.ID, sess.UserID, sess.ExpiresAt)
	return err
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	_, err := conn(ctx, s.pool).Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (s *SessionStore) DeleteForUser(ctx context.Context, userID string) error {
	_, err := conn(ctx, s.pool).Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}
