package post

import "time"

// Post is a piece of authored content. Unpublished posts are visible only
// to their author.
type Post struct {
	ID        int64
	Title     string
	Content   string
	Published bool
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
