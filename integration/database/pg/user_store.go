package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/layangkit/layangkit/core/user"
)

var _ user.Store = (*UserStore)(nil)

// UserStore implements user.Store over PostgreSQL.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

const userColumns = `id, email, name, COALESCE(password_hash, ''), provider,
	COALESCE(google_id, ''), COALESCE(avatar, ''), email_verified, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Provider,
		&u.GoogleID, &u.Avatar, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) Create(ctx context.Context, u *user.User) error {
	_, err := conn(ctx, s.pool).Exec(ctx, `
		INSERT INTO users (id, email, name, password_hash, provider, google_id, avatar, email_verified)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''), $8)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Provider, u.GoogleID, u.Avatar, u.EmailVerified)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "users_email_key" {
			return user.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	return scanUser(conn(ctx, s.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return scanUser(conn(ctx, s.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *UserStore) GetByGoogleID(ctx context.Context, googleID string) (*user.User, error) {
	return scanUser(conn(ctx, s.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID))
}

func (s *UserStore) List(ctx context.Context, limit, offset int) ([]user.User, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := conn(ctx, s.pool).Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *UserStore) UpdateProfile(ctx context.Context, id, name, avatar string) error {
	tag, err := conn(ctx, s.pool).Exec(ctx, `
		UPDATE users SET name = $2, avatar = NULLIF($3, ''), updated_at = now()
		WHERE id = $1`, id, name, avatar)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (s *UserStore) SetEmailVerified(ctx context.Context, id string) error {
	tag, err := conn(ctx, s.pool).Exec(ctx, `
		UPDATE users SET email_verified = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (s *UserStore) SetPasswordHash(ctx context.Context, id, passwordHash string) error {
	tag, err := conn(ctx, s.pool).Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (s *UserStore) LinkGoogle(ctx context.Context, id, googleID, avatar string) error {
	tag, err := conn(ctx, s.pool).Exec(ctx, `
		UPDATE users
		SET google_id = $2, avatar = COALESCE(NULLIF($3, ''), avatar), updated_at = now()
		WHERE id = $1`, id, googleID, avatar)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, s.pool).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}
