package post

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("post not found")

// Store is the persistence contract for posts. Implementations must return
// ErrNotFound when the id does not exist.
type Store interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	// ListPublished returns published posts, newest first.
	ListPublished(ctx context.Context, limit, offset int) ([]Post, error)
	// ListByAuthor returns all posts by the author, drafts included.
	ListByAuthor(ctx context.Context, authorID string) ([]Post, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id int64) error
}
