package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/layangkit/layangkit/core/post"
)

var _ post.Store = (*PostStore)(nil)

// PostStore implements post.Store over PostgreSQL.
type PostStore struct {
	pool *pgxpool.Pool
}

func NewPostStore(pool *pgxpool.Pool) *PostStore {
	return &PostStore{pool: pool}
}

const postColumns = `id, title, content, published, COALESCE(author_id, ''), created_at, updated_at`

func scanPost(row pgx.Row) (*post.Post, error) {
	var p post.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PostStore) Create(ctx context.Context, p *post.Post) error {
	return conn(ctx, s.pool).QueryRow(ctx, `
		INSERT INTO posts (title, content, published, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		p.Title, p.Content, p.Published, p.AuthorID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *PostStore) GetByID(ctx context.Context, id int64) (*post.Post, error) {
	return scanPost(conn(ctx, s.pool).QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
}

func (s *PostStore) ListPublished(ctx context.Context, limit, offset int) ([]post.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := conn(ctx, s.pool).Query(ctx, `
		SELECT `+postColumns+` FROM posts
		WHERE published = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

func (s *PostStore) ListByAuthor(ctx context.Context, authorID string) ([]post.Post, error) {
	rows, err := conn(ctx, s.pool).Query(ctx, `
		SELECT `+postColumns+` FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

func collectPosts(rows pgx.Rows) ([]post.Post, error) {
	var posts []post.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (s *PostStore) Update(ctx context.Context, p *post.Post) error {
	tag, err := conn(ctx, s.pool).Exec(ctx, `
		UPDATE posts
		SET title = $2, content = $3, published = $4, updated_at = now()
		WHERE id = $1`,
		p.ID, p.Title, p.Content, p.Published)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (s *PostStore) Delete(ctx context.Context, id int64) error {
	tag, err := conn(ctx, s.pool).Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return post.ErrNotFound
	}
	return nil
}
