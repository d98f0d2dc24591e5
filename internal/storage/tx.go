// ABOUTME: Query execution handle shared by plain and transactional access.
// ABOUTME: InTx runs a function atomically across every collection.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Conn exposes the typed collections over either the database or a
// transaction. A Conn obtained inside InTx must not be used after fn returns.
type Conn struct {
	q querier
}

// Conn returns a non-transactional handle on the database.
func (d *DB) Conn() *Conn {
	return &Conn{q: d.db}
}

// InTx runs fn inside one transaction. Any error or panic from fn rolls back
// every write fn made, across all collections.
func (d *DB) InTx(ctx context.Context, fn func(c *Conn) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&Conn{q: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
