package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Runner executes functions inside a database transaction carried in the
// context, so store calls made by the function share one atomic unit.
type Runner struct {
	pool *pgxpool.Pool
}

// NewRunner creates a transaction runner over the pool.
func NewRunner(pool *pgxpool.Pool) *Runner {
	return &Runner{pool: pool}
}

// Tx begins a transaction, runs fn with the transaction in the context,
// and commits. Any error from fn rolls the transaction back and is
// returned unchanged so sentinel checks still work.
func (r *Runner) Tx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
