package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/warehouse-data-service/internal/model"
	"github.com/maxviazov/warehouse-data-service/internal/repository"
	"github.com/rs/zerolog"
)

// districtColumn is the only column the API ever filters on. The filter is
// applied solely when the catalog reports a column with this exact name.
const districtColumn = "district"

// querier is the slice of pgxpool.Pool the reader actually uses. Narrowing
// the dependency lets the statement sequencing be tested without a live
// database.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type tableReader struct {
	db               querier
	paginationColumn string
	log              zerolog.Logger
}

// NewTableReader builds the paginated reader for arbitrary warehouse tables.
// The pagination column comes from configuration and is re-checked against
// each table's catalog columns before any statement is sent.
func NewTableReader(pool *pgxpool.Pool, paginationColumn string, logger zerolog.Logger) repository.TableReader {
	l := logger.With().Str("module", "repository").Str("component", "table_reader").Logger()
	r := &tableReader{paginationColumn: paginationColumn, log: l}
	if pool != nil {
		r.db = pool
	}
	return r
}

var _ repository.TableReader = (*tableReader)(nil)

// pageQuery is one page read rendered to SQL: a COUNT statement and a data
// statement sharing the same WHERE clause and argument prefix.
type pageQuery struct {
	countSQL  string
	countArgs []any
	dataSQL   string
	dataArgs  []any
}

// buildPageQuery assembles both statements for a page read. Identifiers were
// confirmed against the catalog by the caller and are quoted here; runtime
// values always travel as positional parameters. A pagination column missing
// from the table aborts the build, so no SQL reaches the database.
func buildPageQuery(q repository.TableQuery, paginationColumn string) (pageQuery, error) {
	if !hasColumn(q.Columns, paginationColumn) {
		return pageQuery{}, &repository.ConfigError{Column: paginationColumn, Schema: q.Schema, Table: q.Table}
	}

	rel := pgx.Identifier{q.Schema, q.Table}.Sanitize()

	var where string
	var args []any
	if q.District != nil && *q.District != "" && hasColumn(q.Columns, districtColumn) {
		args = append(args, *q.District)
		where = fmt.Sprintf(" WHERE %s = $%d", pgx.Identifier{districtColumn}.Sanitize(), len(args))
	}

	countSQL := "SELECT COUNT(*) FROM " + rel + where
	countArgs := append([]any(nil), args...)

	var data strings.Builder
	data.WriteString("SELECT * FROM ")
	data.WriteString(rel)
	data.WriteString(where)
	args = append(args, q.Page.Size)
	fmt.Fprintf(&data, " ORDER BY %s LIMIT $%d", pgx.Identifier{paginationColumn}.Sanitize(), len(args))
	args = append(args, q.Page.Offset())
	fmt.Fprintf(&data, " OFFSET $%d", len(args))

	return pageQuery{countSQL: countSQL, countArgs: countArgs, dataSQL: data.String(), dataArgs: args}, nil
}

func hasColumn(cols []model.Column, name string) bool {
	for _, c := range cols {
		if c.Name == name {
			return true
		}
	}
	return false
}

// ReadPage runs the count statement first, then fetches the requested window.
// The two statements run back to back on pooled connections, so the total can
// drift from the returned rows under concurrent writes.
func (r *tableReader) ReadPage(ctx context.Context, q repository.TableQuery) (repository.PageResult, error) {
	if r.db == nil {
		return repository.PageResult{}, errNilPool
	}

	stmts, err := buildPageQuery(q, r.paginationColumn)
	if err != nil {
		return repository.PageResult{}, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, stmts.countSQL, stmts.countArgs...).Scan(&total); err != nil {
		return repository.PageResult{}, r.fail("count table rows", q, err)
	}

	rows, err := r.db.Query(ctx, stmts.dataSQL, stmts.dataArgs...)
	if err != nil {
		return repository.PageResult{}, r.fail("query table data", q, err)
	}
	defer rows.Close()

	collected, err := collectRows(rows)
	if err != nil {
		return repository.PageResult{}, r.fail("query table data", q, err)
	}

	return repository.PageResult{Rows: collected, Total: total}, nil
}

// fail logs the driver failure with its SQLSTATE and wraps it for the caller.
func (r *tableReader) fail(op string, q repository.TableQuery, err error) error {
	evt := r.log.Error().Err(err).Str("schema", q.Schema).Str("table", q.Table)
	if code := repository.PgErrorCode(err); code != "" {
		evt = evt.Str("pg_code", code)
	}
	if repository.IsUndefinedTable(err) {
		// The table passed the existence check and vanished before the read.
		evt = evt.Bool("dropped_after_check", true)
	}
	evt.Msg(op + " failed")
	return repository.NewQueryError(op, err)
}

// collectRows converts a pgx result set into column-keyed maps, keeping the
// driver's native Go values.
func collectRows(rows pgx.Rows) ([]model.Row, error) {
	fields := rows.FieldDescriptions()
	out := make([]model.Row, 0)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(model.Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var errNilPool = errors.New("postgres pool is not initialized")

// ensurePool guards the pool-backed repositories against use before New has
// run.
func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errNilPool
	}
	return nil
}
