package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type transactionContextKey struct{}

var txContextKey = transactionContextKey{}

// Queryer is the query surface shared by pgx.Tx and pgxpool.Pool.
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type txStarter interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxManager runs a function inside a single database transaction. The
// transaction travels through the context, so repository calls made inside
// the function share it transparently; nested calls reuse the outer
// transaction instead of opening their own.
type TxManager struct {
	pool txStarter
}

func NewTxManager(pool txStarter) *TxManager {
	return &TxManager{pool: pool}
}

// Within begins a read-write transaction, runs fn, and commits. Any error
// from fn rolls the whole transaction back: either every statement issued
// inside fn is visible, or none is.
func (m *TxManager) Within(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("postgres: transaction function is required")
	}

	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := fn(contextWithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("postgres: commit: %w", err)
	}

	committed = true
	return nil
}

func contextWithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txContextKey, tx)
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txContextKey).(pgx.Tx)
	return tx, ok
}

// queryerFromContext returns the in-flight transaction when one is present,
// otherwise the fallback pool.
func queryerFromContext(ctx context.Context, fallback Queryer) Queryer {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return fallback
}
