package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/warehouse-data-service/internal/model"
	"github.com/maxviazov/warehouse-data-service/internal/repository"
)

// Catalog queries are package constants and take caller input exclusively
// through bound parameters.
const (
	tableExistsQuery = `SELECT EXISTS (
		SELECT 1
		FROM information_schema.tables
		WHERE table_schema = $1
		  AND table_name = $2
	)`

	tableColumnsQuery = `SELECT column_name, data_type, is_nullable
	FROM information_schema.columns
	WHERE table_schema = $1
	  AND table_name = $2
	ORDER BY ordinal_position`
)

type schemaIntrospector struct{ pool *pgxpool.Pool }

// NewSchemaIntrospector exposes information_schema lookups behind the
// repository contract.
func NewSchemaIntrospector(pool *pgxpool.Pool) repository.SchemaIntrospector {
	return &schemaIntrospector{pool: pool}
}

var _ repository.SchemaIntrospector = (*schemaIntrospector)(nil)

func (r *schemaIntrospector) TableExists(ctx context.Context, schema, table string) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, tableExistsQuery, schema, table).Scan(&exists); err != nil {
		return false, repository.NewQueryError("check table existence", err)
	}
	return exists, nil
}

func (r *schemaIntrospector) Columns(ctx context.Context, schema, table string) ([]model.Column, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, tableColumnsQuery, schema, table)
	if err != nil {
		return nil, repository.NewQueryError("fetch table columns", err)
	}
	defer rows.Close()

	cols := make([]model.Column, 0)
	for rows.Next() {
		var name, dataType, isNullable string
		if err := rows.Scan(&name, &dataType, &isNullable); err != nil {
			return nil, repository.NewQueryError("fetch table columns", err)
		}
		cols = append(cols, model.Column{Name: name, Type: dataType, Nullable: isNullable == "YES"})
	}
	if err := rows.Err(); err != nil {
		return nil, repository.NewQueryError("fetch table columns", err)
	}
	return cols, nil
}
