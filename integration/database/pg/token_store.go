package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/layangkit/layangkit/core/verification"
)

var _ verification.Store = (*TokenStore)(nil)

// TokenStore implements verification.Store over PostgreSQL. Each kind lives
// in its own table so a leaked verification token can never be replayed as a
// password reset.
type TokenStore struct {
	pool *pgxpool.Pool
}

func NewTokenStore(pool *pgxpool.Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

func tokenTable(kind verification.Kind) (string, error) {
	switch kind {
	case verification.KindEmailVerification:
		return "email_verification_tokens", nil
	case verification.KindPasswordReset:
		return "password_reset_tokens", nil
	default:
		return "", fmt.Errorf("unknown token kind %q", kind)
	}
}

func (s *TokenStore) scanToken(row pgx.Row, kind verification.Kind) (*verification.Token, error) {
	var tok verification.Token
	tok.Kind = kind
	err := row.Scan(&tok.ID, &tok.UserID, &tok.TokenHash, &tok.ExpiresAt, &tok.Used, &tok.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, verification.ErrNotFound
		}
		return nil, err
	}
	return &tok, nil
}

func (s *TokenStore) GetActive(ctx context.Context, userID string, kind verification.Kind, tokenHash string) (*verification.Token, error) {
	table, err := tokenTable(kind)
	if err != nil {
		return nil, err
	}
	row := conn(ctx, s.pool).QueryRow(ctx, `
		SELECT id, user_id, token_hash, expires_at, used, created_at
		FROM `+table+`
		WHERE user_id = $1 AND token_hash = $2 AND used = FALSE AND expires_at > now()`,
		userID, tokenHash)
	return s.scanToken(row, kind)
}

func (s *TokenStore) GetRecent(ctx context.Context, userID string, kind verification.Kind, since time.Time) (*verification.Token, error) {
	table, err := tokenTable(kind)
	if err != nil {
		return nil, err
	}
	row := conn(ctx, s.pool).QueryRow(ctx, `
		SELECT id, user_id, token_hash, expires_at, used, created_at
		FROM `+table+`
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT 1`,
		userID, since)
	return s.scanToken(row, kind)
}

func (s *TokenStore) Put(ctx context.Context, tok *verification.Token) error {
	table, err := tokenTable(tok.Kind)
	if err != nil {
		return err
	}
	_, err = conn(ctx, s.pool).Exec(ctx, `
		INSERT INTO `+table+` (id, user_id, token_hash, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		tok.ID, tok.UserID, tok.TokenHash, tok.ExpiresAt, tok.Used, tok.CreatedAt)
	return err
}

func (s *TokenStore) DeleteForUser(ctx context.Context, userID string, kind verification.Kind) error {
	table, err := tokenTable(kind)
	if err != nil {
		return err
	}
	_, err = conn(ctx, s.pool).Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID)
	return err
}

// MarkUsed tries both tables. Token ids are random, so an id can exist in at
// most one of them; the conditional WHERE keeps the update race free.
func (s *TokenStore) MarkUsed(ctx context.Context, id string) (bool, error) {
	for _, table := range []string{"email_verification_tokens", "password_reset_tokens"} {
		tag, err := conn(ctx, s.pool).Exec(ctx,
			`UPDATE `+table+` SET used = TRUE WHERE id = $1 AND used = FALSE`, id)
		if err != nil {
			return false, err
		}
		if tag.RowsAffected() > 0 {
			return true, nil
		}
	}
	return false, nil
}
