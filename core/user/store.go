package user

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when creating a user with an email that
	// already has an account. Registration deliberately surfaces this to
	// the client; the forgot-password and resend flows mask it instead.
	ErrEmailTaken = errors.New("email already registered")
)

// Store is the persistence contract for user accounts.
// Implementations must be safe for concurrent use.
type Store interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*User, error)
	// List returns users ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]User, error)

	UpdateProfile(ctx context.Context, id, name, avatar string) error
	SetEmailVerified(ctx context.Context, id string) error
	SetPasswordHash(ctx context.Context, id, passwordHash string) error
	// LinkGoogle attaches a Google subject id to an existing account.
	LinkGoogle(ctx context.Context, id, googleID, avatar string) error
	Delete(ctx context.Context, id string) error
}
