package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TxFunc chạy trong transaction; trả error để rollback
type TxFunc func(*sql.Tx) error

// WithTransaction: begin -> fn -> commit.
// fn lỗi hoặc panic thì rollback; panic được ném lại sau rollback.
// Lỗi rollback (nếu có) được join vào lỗi của fn.
func WithTransaction(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
