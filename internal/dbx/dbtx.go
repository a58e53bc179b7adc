// Package dbx holds the thin database plumbing shared by the repositories:
// a query handle satisfied by both *sql.DB and *sql.Tx, and a transaction
// wrapper around it.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the repositories use. Both *sql.DB and *sql.Tx
// implement it, so a repository method can run standalone or as part of a
// larger transaction without knowing which.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction on db: committed when fn returns nil,
// rolled back otherwise. A panic in fn also rolls back and is rethrown.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
