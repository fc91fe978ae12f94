package repository

import (
	"context"

	"github.com/maxviazov/warehouse-data-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SchemaIntrospector reads table metadata from the PostgreSQL catalog.
// Both operations take schema and table as bound parameters; neither ever
// interpolates caller input into SQL.
type SchemaIntrospector interface {
	// TableExists reports whether schema.table is present in
	// information_schema.tables. Absence is a regular false, not an error.
	TableExists(ctx context.Context, schema, table string) (bool, error)
	// Columns returns the table's columns in ordinal position order. An
	// unknown table yields an empty slice; higher layers decide what that means.
	Columns(ctx context.Context, schema, table string) ([]model.Column, error)
}

// TableQuery is a fully validated read request for one page of a table whose
// existence and column set were already confirmed against the catalog.
type TableQuery struct {
	Schema  string
	Table   string
	Columns []model.Column
	// District optionally filters on a column literally named "district".
	// nil or empty means unfiltered; the filter is silently skipped when the
	// table has no such column.
	District *string
	Page     Page
}

// TableReader executes paginated reads against catalog-confirmed tables.
// I return domain models and surface typed errors from errors.go rather than PG codes.
type TableReader interface {
	ReadPage(ctx context.Context, q TableQuery) (PageResult, error)
}
