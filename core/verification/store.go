package verification

import (
	"context"
	"time"
)

// Store is the persistence contract for verification and reset tokens.
//
// MarkUsed must be a conditional update: flip used to true only if it is
// currently false, and report whether a row changed. Read-then-write
// implementations reopen the replay race between concurrent consumers.
type Store interface {
	// GetActive returns the unused, unexpired token matching the digest,
	// or ErrNotFound.
	GetActive(ctx context.Context, userID string, kind Kind, tokenHash string) (*Token, error)
	// GetRecent returns any token of the kind created at or after since,
	// regardless of its used flag, or ErrNotFound.
	GetRecent(ctx context.Context, userID string, kind Kind, since time.Time) (*Token, error)
	Put(ctx context.Context, tok *Token) error
	// DeleteForUser removes every token of the kind for the user.
	DeleteForUser(ctx context.Context, userID string, kind Kind) error
	// MarkUsed conditionally marks the token consumed and reports whether
	// this call changed the row.
	MarkUsed(ctx context.Context, id string) (bool, error)
}
