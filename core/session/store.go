package session

import (
	"context"

	"github.com/layangkit/layangkit/core/user"
)

// Store is the persistence contract for session rows.
// Get must return ErrNotFound for unknown ids. Delete must be idempotent:
// deleting an absent row is not an error. Individual operations must be
// atomic; concurrent renewal writes may race and last-write-wins is
// acceptable since renewal only ever extends the expiry.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
	DeleteForUser(ctx context.Context, userID string) error
}

// UserStore is the narrow user lookup the manager needs to resolve the
// session owner during validation.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}
