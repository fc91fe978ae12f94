package service

import (
	"context"
	"strings"
	"time"

	"github.com/maxviazov/warehouse-data-service/internal/model"
	"github.com/maxviazov/warehouse-data-service/internal/repository"
	"github.com/rs/zerolog"
)

// tableDataService holds the table read use case: validation + orchestration,
// no transport or SQL details.
type tableDataService struct {
	introspector repository.SchemaIntrospector
	reader       repository.TableReader
	log          zerolog.Logger
}

func NewTableDataService(introspector repository.SchemaIntrospector, reader repository.TableReader, logger zerolog.Logger) TableDataService {
	l := logger.With().Str("module", "service").Str("component", "table_data").Logger()
	return &tableDataService{introspector: introspector, reader: reader, log: l}
}

var _ TableDataService = (*tableDataService)(nil)

// FetchTableData validates the request, confirms the table through the
// catalog and reads one page. The existence check runs before the column
// lookup so a missing table and a zero-column table produce distinct
// messages.
func (s *tableDataService) FetchTableData(ctx context.Context, req TableDataRequest) (model.TableData, error) {
	start := time.Now()

	schema := strings.TrimSpace(req.Schema)
	table := strings.TrimSpace(req.Table)

	var ferrs []FieldError
	switch {
	case schema == "":
		ferrs = append(ferrs, FieldError{Field: "schema_name", Message: "must not be empty"})
	case !isValidIdentifier(schema):
		ferrs = append(ferrs, FieldError{Field: "schema_name", Message: "must be a valid identifier"})
	}
	switch {
	case table == "":
		ferrs = append(ferrs, FieldError{Field: "table_name", Message: "must not be empty"})
	case !isValidIdentifier(table):
		ferrs = append(ferrs, FieldError{Field: "table_name", Message: "must be a valid identifier"})
	}
	if err := NewInvalidInput(ferrs); err != nil {
		s.log.Debug().Str("schema_raw", req.Schema).Str("table_raw", req.Table).Interface("field_errors", ferrs).Msg("table request validation failed")
		return model.TableData{}, err
	}

	page := normalizePage(req.Page, req.PageSize)

	exists, err := s.introspector.TableExists(ctx, schema, table)
	if err != nil {
		s.log.Error().Err(err).Str("schema", schema).Str("table", table).Msg("table existence check failed")
		return model.TableData{}, err
	}
	if !exists {
		return model.TableData{}, newNotFound("Table '%s.%s' not found", schema, table)
	}

	cols, err := s.introspector.Columns(ctx, schema, table)
	if err != nil {
		s.log.Error().Err(err).Str("schema", schema).Str("table", table).Msg("column lookup failed")
		return model.TableData{}, err
	}
	if len(cols) == 0 {
		return model.TableData{}, newNotFound("No columns found for table '%s.%s'", schema, table)
	}

	res, err := s.reader.ReadPage(ctx, repository.TableQuery{
		Schema:   schema,
		Table:    table,
		Columns:  cols,
		District: req.District,
		Page:     page,
	})
	if err != nil {
		// The reader logs its own failures with driver context, do not re-log.
		return model.TableData{}, err
	}

	rows := res.Rows
	if rows == nil {
		rows = []model.Row{}
	}

	totalPages := (res.Total + int64(page.Size) - 1) / int64(page.Size)

	s.log.Debug().
		Dur("took", time.Since(start)).
		Str("schema", schema).
		Str("table", table).
		Int("page", page.Number).
		Int("page_size", page.Size).
		Int64("total_items", res.Total).
		Msg("table page served")

	return model.TableData{
		Data:    rows,
		Columns: cols,
		Pagination: model.Pagination{
			TotalItems: res.Total,
			Page:       page.Number,
			PageSize:   page.Size,
			TotalPages: totalPages,
		},
	}, nil
}
