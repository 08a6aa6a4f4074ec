package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestTxManager_Commit(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	tm := NewTxManager(mock)

	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectCommit()

	err := tm.Within(context.Background(), func(ctx context.Context) error {
		if _, ok := txFromContext(ctx); !ok {
			t.Fatalf("transaction not injected into context")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Within returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTxManager_RollbackOnError(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	tm := NewTxManager(mock)

	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectRollback()

	wantErr := errors.New("usecase error")
	err := tm.Within(context.Background(), func(ctx context.Context) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the inner error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTxManager_NestedCallsReuseTransaction(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	tm := NewTxManager(mock)

	// Only one BeginTx/Commit pair even with a nested Within
	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectCommit()

	err := tm.Within(context.Background(), func(ctx context.Context) error {
		return tm.Within(ctx, func(inner context.Context) error {
			if _, ok := txFromContext(inner); !ok {
				t.Fatalf("nested call lost the transaction")
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("Within returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
