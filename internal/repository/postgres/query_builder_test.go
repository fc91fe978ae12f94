package postgres

import (
	"errors"
	"testing"

	"github.com/maxviazov/warehouse-data-service/internal/model"
	"github.com/maxviazov/warehouse-data-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeColumns() []model.Column {
	return []model.Column{
		{Name: "id", Type: "bigint"},
		{Name: "name", Type: "text"},
		{Name: "district", Type: "text", Nullable: true},
	}
}

func strPtr(s string) *string { return &s }

func TestBuildPageQuery(t *testing.T) {
	tests := []struct {
		name          string
		query         repository.TableQuery
		column        string
		wantCountSQL  string
		wantCountArgs []any
		wantDataSQL   string
		wantDataArgs  []any
	}{
		{
			name: "plain first page",
			query: repository.TableQuery{
				Schema:  "analytics",
				Table:   "stores",
				Columns: storeColumns(),
				Page:    repository.Page{Number: 1, Size: 5},
			},
			column:        "id",
			wantCountSQL:  `SELECT COUNT(*) FROM "analytics"."stores"`,
			wantCountArgs: nil,
			wantDataSQL:   `SELECT * FROM "analytics"."stores" ORDER BY "id" LIMIT $1 OFFSET $2`,
			wantDataArgs:  []any{5, 0},
		},
		{
			name: "offset from page number",
			query: repository.TableQuery{
				Schema:  "analytics",
				Table:   "stores",
				Columns: storeColumns(),
				Page:    repository.Page{Number: 4, Size: 25},
			},
			column:        "id",
			wantCountSQL:  `SELECT COUNT(*) FROM "analytics"."stores"`,
			wantCountArgs: nil,
			wantDataSQL:   `SELECT * FROM "analytics"."stores" ORDER BY "id" LIMIT $1 OFFSET $2`,
			wantDataArgs:  []any{25, 75},
		},
		{
			name: "district filter on both statements",
			query: repository.TableQuery{
				Schema:   "analytics",
				Table:    "stores",
				Columns:  storeColumns(),
				District: strPtr("north"),
				Page:     repository.Page{Number: 2, Size: 5},
			},
			column:        "id",
			wantCountSQL:  `SELECT COUNT(*) FROM "analytics"."stores" WHERE "district" = $1`,
			wantCountArgs: []any{"north"},
			wantDataSQL:   `SELECT * FROM "analytics"."stores" WHERE "district" = $1 ORDER BY "id" LIMIT $2 OFFSET $3`,
			wantDataArgs:  []any{"north", 5, 5},
		},
		{
			name: "district skipped without column",
			query: repository.TableQuery{
				Schema:   "analytics",
				Table:    "events",
				Columns:  []model.Column{{Name: "event_id"}, {Name: "kind"}},
				District: strPtr("north"),
				Page:     repository.Page{Number: 1, Size: 10},
			},
			column:        "event_id",
			wantCountSQL:  `SELECT COUNT(*) FROM "analytics"."events"`,
			wantCountArgs: nil,
			wantDataSQL:   `SELECT * FROM "analytics"."events" ORDER BY "event_id" LIMIT $1 OFFSET $2`,
			wantDataArgs:  []any{10, 0},
		},
		{
			name: "empty district skipped",
			query: repository.TableQuery{
				Schema:   "analytics",
				Table:    "stores",
				Columns:  storeColumns(),
				District: strPtr(""),
				Page:     repository.Page{Number: 1, Size: 10},
			},
			column:        "id",
			wantCountSQL:  `SELECT COUNT(*) FROM "analytics"."stores"`,
			wantCountArgs: nil,
			wantDataSQL:   `SELECT * FROM "analytics"."stores" ORDER BY "id" LIMIT $1 OFFSET $2`,
			wantDataArgs:  []any{10, 0},
		},
		{
			name: "identifier quotes are doubled",
			query: repository.TableQuery{
				Schema:  `we"ird`,
				Table:   `ta"ble`,
				Columns: []model.Column{{Name: "id"}},
				Page:    repository.Page{Number: 1, Size: 1},
			},
			column:        "id",
			wantCountSQL:  `SELECT COUNT(*) FROM "we""ird"."ta""ble"`,
			wantCountArgs: nil,
			wantDataSQL:   `SELECT * FROM "we""ird"."ta""ble" ORDER BY "id" LIMIT $1 OFFSET $2`,
			wantDataArgs:  []any{1, 0},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := buildPageQuery(test.query, test.column)
			require.NoError(t, err)
			assert.Equal(t, test.wantCountSQL, got.countSQL)
			assert.Equal(t, test.wantCountArgs, got.countArgs)
			assert.Equal(t, test.wantDataSQL, got.dataSQL)
			assert.Equal(t, test.wantDataArgs, got.dataArgs)
		})
	}
}

func TestBuildPageQuery_MissingPaginationColumn(t *testing.T) {
	q := repository.TableQuery{
		Schema:  "analytics",
		Table:   "events",
		Columns: []model.Column{{Name: "event_id"}, {Name: "kind"}},
		Page:    repository.Page{Number: 1, Size: 10},
	}

	_, err := buildPageQuery(q, "id")

	var cfgErr *repository.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "id", cfgErr.Column)
	assert.Equal(t, "analytics", cfgErr.Schema)
	assert.Equal(t, "events", cfgErr.Table)
	assert.Equal(t, "Pagination column 'id' not found in table columns", cfgErr.Error())
}
