package database

import (
	"context"
	"database/sql"
)

// sqlQuerier is the subset shared by *sql.DB and *sql.Tx.
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type sqlExecutor struct {
	q sqlQuerier
}

func (e sqlExecutor) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	return e.q.ExecContext(ctx, query, args...)
}

func (e sqlExecutor) QueryRow(ctx context.Context, query string, args ...any) Row {
	return e.q.QueryRowContext(ctx, query, args...)
}

func (e sqlExecutor) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := e.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SQLConnection adapts a database/sql pool to Connection. The SQLite driver
// uses it directly; tests use it over go-sqlmock to exercise either dialect.
type SQLConnection struct {
	sqlExecutor
	db     *sql.DB
	driver Driver
}

// NewSQLConnection wraps db, rendering queries for driver.
func NewSQLConnection(db *sql.DB, driver Driver) *SQLConnection {
	return &SQLConnection{sqlExecutor: sqlExecutor{q: db}, db: db, driver: driver}
}

// DB returns the underlying *sql.DB.
func (c *SQLConnection) DB() *sql.DB { return c.db }

// Driver returns the driver type.
func (c *SQLConnection) Driver() Driver { return c.driver }

// Close closes the pool.
func (c *SQLConnection) Close() error { return c.db.Close() }

// Ping verifies the connection is still alive.
func (c *SQLConnection) Ping(ctx context.Context) error { return c.db.PingContext(ctx) }

// BeginTx starts a new transaction.
func (c *SQLConnection) BeginTx(ctx context.Context) (Transaction, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlTransaction{sqlExecutor: sqlExecutor{q: tx}, tx: tx}, nil
}

type sqlTransaction struct {
	sqlExecutor
	tx *sql.Tx
}

func (t *sqlTransaction) Commit(context.Context) error   { return t.tx.Commit() }
func (t *sqlTransaction) Rollback(context.Context) error { return t.tx.Rollback() }
