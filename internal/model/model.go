// Package model contains the data shapes served by the warehouse read API.
// I keep it lean and focused on data shapes without behavior.
package model

// Column describes one column of a warehouse table as reported by the
// PostgreSQL information_schema catalog, in ordinal position order.
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// Row is a single table row keyed by column name. Values keep the driver's
// native Go types so the JSON encoding reflects what PostgreSQL returned.
type Row map[string]any

// Pagination carries the page math computed for one read.
// total_pages is ceil(total_items / page_size); zero rows means zero pages.
type Pagination struct {
	TotalItems int64 `json:"total_items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
}

// TableData is the full response payload for a paginated table read.
// Data is always a present array; an empty page serializes as [].
type TableData struct {
	Data       []Row      `json:"data"`
	Columns    []Column   `json:"columns"`
	Pagination Pagination `json:"pagination"`
}
