package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)
	return db
}

func count(t *testing.T, db *sql.DB) int {
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	return n
}

func TestWithTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		db := openDB(t)
		err := WithTransaction(ctx, db, nil, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO t VALUES (1)`)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, count(t, db))
	})

	t.Run("rollback on error", func(t *testing.T) {
		db := openDB(t)
		boom := errors.New("boom")
		err := WithTransaction(ctx, db, nil, func(tx *sql.Tx) error {
			_, _ = tx.ExecContext(ctx, `INSERT INTO t VALUES (1)`)
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, count(t, db))
	})

	t.Run("rollback on panic", func(t *testing.T) {
		db := openDB(t)
		assert.Panics(t, func() {
			_ = WithTransaction(ctx, db, nil, func(tx *sql.Tx) error {
				_, _ = tx.ExecContext(ctx, `INSERT INTO t VALUES (1)`)
				panic("boom")
			})
		})
		assert.Equal(t, 0, count(t, db))
	})
}
