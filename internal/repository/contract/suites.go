// Package contract defines reusable behavioral test suites for repository
// implementations. Any backend claiming to satisfy the repository contracts
// plugs in through a small factory.
package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/maxviazov/warehouse-data-service/internal/model"
	"github.com/maxviazov/warehouse-data-service/internal/repository"
)

// Fixture layout the suites assume (created by the harness):
//
//	analytics.stores  12 rows keyed by bigint id 1..12,
//	                  district: north=5, south=4, east=3
//	analytics.events  7 rows keyed by event_id, no id and no district column
//	analytics.bare    a table with zero columns
const (
	fixtureSchema = "analytics"
	storesTable   = "stores"
	eventsTable   = "events"
	bareTable     = "bare"

	storesRows = 12
	eventsRows = 7
)

type IntrospectorFactory func(t *testing.T) (repository.SchemaIntrospector, func())

type ReaderFactory func(t *testing.T, paginationColumn string) (repository.TableReader, repository.SchemaIntrospector, func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func RunSchemaIntrospectorContract(t *testing.T, makeRepo IntrospectorFactory) {
	t.Helper()

	t.Run("existing_table", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ok, err := repo.TableExists(context.Background(), fixtureSchema, storesTable)
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if !ok {
			t.Fatalf("expected %s.%s to exist", fixtureSchema, storesTable)
		}
	})

	t.Run("missing_table", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ok, err := repo.TableExists(context.Background(), fixtureSchema, "no_such_table")
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if ok {
			t.Fatal("expected missing table to report false")
		}
	})

	t.Run("columns_in_ordinal_order", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		cols, err := repo.Columns(context.Background(), fixtureSchema, storesTable)
		if err != nil {
			t.Fatalf("columns: %v", err)
		}
		want := []string{"id", "name", "district", "created_at"}
		if len(cols) != len(want) {
			t.Fatalf("expected %d columns, got %d: %+v", len(want), len(cols), cols)
		}
		for i, name := range want {
			if cols[i].Name != name {
				t.Fatalf("column %d: expected %q, got %q", i, name, cols[i].Name)
			}
		}
		if cols[0].Nullable {
			t.Fatal("id must not be nullable")
		}
		if !cols[2].Nullable {
			t.Fatal("district must be nullable")
		}
		if cols[0].Type == "" {
			t.Fatal("column type must be populated")
		}
	})

	t.Run("columns_missing_table_empty", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		cols, err := repo.Columns(context.Background(), fixtureSchema, "no_such_table")
		if err != nil {
			t.Fatalf("columns: %v", err)
		}
		if len(cols) != 0 {
			t.Fatalf("expected no columns, got %+v", cols)
		}
	})

	t.Run("zero_column_table", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ok, err := repo.TableExists(context.Background(), fixtureSchema, bareTable)
		if err != nil || !ok {
			t.Fatalf("expected bare table to exist, ok=%v err=%v", ok, err)
		}
		cols, err := repo.Columns(context.Background(), fixtureSchema, bareTable)
		if err != nil {
			t.Fatalf("columns: %v", err)
		}
		if len(cols) != 0 {
			t.Fatalf("expected zero columns, got %+v", cols)
		}
	})
}

func RunTableReaderContract(t *testing.T, makeReader ReaderFactory) {
	t.Helper()

	readPage := func(t *testing.T, reader repository.TableReader, intro repository.SchemaIntrospector, table string, district *string, page repository.Page) repository.PageResult {
		t.Helper()
		ctx := context.Background()
		cols, err := intro.Columns(ctx, fixtureSchema, table)
		if err != nil {
			t.Fatalf("columns: %v", err)
		}
		res, err := reader.ReadPage(ctx, repository.TableQuery{
			Schema:   fixtureSchema,
			Table:    table,
			Columns:  cols,
			District: district,
			Page:     page,
		})
		if err != nil {
			t.Fatalf("read page: %v", err)
		}
		return res
	}

	t.Run("first_page", func(t *testing.T) {
		reader, intro, cleanup := makeReader(t, "id")
		t.Cleanup(cleanup)
		res := readPage(t, reader, intro, storesTable, nil, repository.Page{Number: 1, Size: 5})
		if res.Total != storesRows {
			t.Fatalf("expected total %d, got %d", storesRows, res.Total)
		}
		if len(res.Rows) != 5 {
			t.Fatalf("expected 5 rows, got %d", len(res.Rows))
		}
		for i, row := range res.Rows {
			if got := rowInt(t, row, "id"); got != int64(i+1) {
				t.Fatalf("row %d: expected id %d, got %d", i, i+1, got)
			}
		}
	})

	t.Run("last_page_remainder", func(t *testing.T) {
		reader, intro, cleanup := makeReader(t, "id")
		t.Cleanup(cleanup)
		res := readPage(t, reader, intro, storesTable, nil, repository.Page{Number: 3, Size: 5})
		if res.Total != storesRows {
			t.Fatalf("expected total %d, got %d", storesRows, res.Total)
		}
		if len(res.Rows) != 2 {
			t.Fatalf("expected 2 rows on the last page, got %d", len(res.Rows))
		}
		if got := rowInt(t, res.Rows[0], "id"); got != 11 {
			t.Fatalf("expected first id 11, got %d", got)
		}
	})

	t.Run("page_beyond_end", func(t *testing.T) {
		reader, intro, cleanup := makeReader(t, "id")
		t.Cleanup(cleanup)
		res := readPage(t, reader, intro, storesTable, nil, repository.Page{Number: 5, Size: 5})
		if res.Total != storesRows {
			t.Fatalf("expected total %d, got %d", storesRows, res.Total)
		}
		if res.Rows == nil || len(res.Rows) != 0 {
			t.Fatalf("expected present empty rows, got %#v", res.Rows)
		}
	})

	t.Run("district_filter", func(t *testing.T) {
		reader, intro, cleanup := makeReader(t, "id")
		t.Cleanup(cleanup)
		north := "north"
		res := readPage(t, reader, intro, storesTable, &north, repository.Page{Number: 1, Size: 100})
		if res.Total != 5 {
			t.Fatalf("expected 5 north rows, got total %d", res.Total)
		}
		if len(res.Rows) != 5 {
			t.Fatalf("expected 5 rows, got %d", len(res.Rows))
		}
		for i, row := range res.Rows {
			if row["district"] != "north" {
				t.Fatalf("row %d: unexpected district %v", i, row["district"])
			}
		}
	})

	t.Run("district_ignored_without_column", func(t *testing.T) {
		reader, intro, cleanup := makeReader(t, "event_id")
		t.Cleanup(cleanup)
		north := "north"
		res := readPage(t, reader, intro, eventsTable, &north, repository.Page{Number: 1, Size: 100})
		if res.Total != eventsRows {
			t.Fatalf("expected filter to be skipped, total %d", res.Total)
		}
	})

	t.Run("missing_pagination_column", func(t *testing.T) {
		reader, intro, cleanup := makeReader(t, "id")
		t.Cleanup(cleanup)
		ctx := context.Background()
		cols, err := intro.Columns(ctx, fixtureSchema, eventsTable)
		if err != nil {
			t.Fatalf("columns: %v", err)
		}
		_, err = reader.ReadPage(ctx, repository.TableQuery{
			Schema:  fixtureSchema,
			Table:   eventsTable,
			Columns: cols,
			Page:    repository.Page{Number: 1, Size: 10},
		})
		var cfgErr *repository.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
		if cfgErr.Error() != "Pagination column 'id' not found in table columns" {
			t.Fatalf("unexpected message: %q", cfgErr.Error())
		}
	})

	t.Run("union_of_pages_covers_all", func(t *testing.T) {
		reader, intro, cleanup := makeReader(t, "id")
		t.Cleanup(cleanup)
		seen := make(map[int64]bool)
		for page := 1; page <= 3; page++ {
			res := readPage(t, reader, intro, storesTable, nil, repository.Page{Number: page, Size: 5})
			for _, row := range res.Rows {
				seen[rowInt(t, row, "id")] = true
			}
		}
		if len(seen) != storesRows {
			t.Fatalf("expected %d distinct ids across pages, got %d", storesRows, len(seen))
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}

// rowInt pulls an integer key out of a generic row regardless of the driver's
// concrete width.
func rowInt(t *testing.T, row model.Row, key string) int64 {
	t.Helper()
	switch v := row[key].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	default:
		t.Fatalf("unexpected %s type %T", key, row[key])
		return 0
	}
}
