package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ConfigError reports a server-side misconfiguration caught before any SQL is
// issued, such as the configured pagination column missing from the target
// table. The message wording is part of the API contract.
type ConfigError struct {
	Column string
	Schema string
	Table  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Pagination column '%s' not found in table columns", e.Column)
}

// QueryError wraps a database failure together with the operation that
// produced it. The cause stays reachable through errors.As / errors.Is so
// callers can still inspect PostgreSQL error codes.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *QueryError) Unwrap() error { return e.Err }

// NewQueryError decorates a driver error; nil stays nil so call sites can
// wrap unconditionally.
func NewQueryError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Op: op, Err: err}
}

// PgErrorCode extracts the SQLSTATE code when err originated from PostgreSQL,
// or "" otherwise. I only surface the code; mapping it to behavior is left to
// the caller so the read path stays faithful to what the database reported.
func PgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUndefinedTable reports whether the error is PostgreSQL's undefined_table.
// A table can pass the catalog existence check and be dropped before the data
// query runs; the read still fails (by contract), but the logs should say why.
func IsUndefinedTable(err error) bool {
	return PgErrorCode(err) == pgerrcode.UndefinedTable
}
