package repository

import "github.com/maxviazov/warehouse-data-service/internal/model"

// Page represents a 1-based page window already normalized by the service
// layer. I keep it intentionally small; validation belongs to higher layers.
type Page struct {
	Number int
	Size   int
}

// Offset converts the page window into a row offset for LIMIT/OFFSET reads.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PageResult carries one page of rows plus the total count matching the query.
// I return the total so clients can compute pagination without an extra round trip.
type PageResult struct {
	Rows  []model.Row
	Total int64
}
