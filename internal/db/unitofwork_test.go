package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/strata/internal/db"
)

func openUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertStrategy(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO strategies (id, title, start_date, target_date, created_at)
		VALUES (?, 'x', '2025-01-01', '2025-06-30', '2025-01-01T00:00:00Z')`, id)
	return err
}

func countStrategies(t *testing.T, uow *db.SQLiteUnitOfWork) int {
	t.Helper()
	var n int
	require.NoError(t, uow.WithinReadTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM strategies`).Scan(&n)
	}))
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openUoW(t)
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertStrategy(ctx, tx, "s1")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countStrategies(t, uow))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openUoW(t)
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertStrategy(ctx, tx, "s1"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.Equal(t, 0, countStrategies(t, uow))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openUoW(t)
	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertStrategy(ctx, tx, "s1")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countStrategies(t, uow))
}
