package database

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNoRows is returned when a query expected to return a row returns none.
	ErrNoRows = errors.New("no rows in result set")
	// ErrNoTransaction is returned when a unit of work finds no transaction in context.
	ErrNoTransaction = errors.New("no transaction in context")
)

// IsNoRows reports whether err means a single-row query found nothing,
// for both pgx and database/sql backends.
func IsNoRows(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, ErrNoRows)
}
