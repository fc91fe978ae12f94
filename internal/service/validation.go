package service

import (
	"regexp"

	"github.com/maxviazov/warehouse-data-service/internal/repository"
)

// identRe matches unquoted PostgreSQL identifiers. Names are additionally
// capped at the 63-byte catalog limit in isValidIdentifier.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

func isValidIdentifier(s string) bool {
	return len(s) <= 63 && identRe.MatchString(s)
}

func normalizePage(page, size int) repository.Page {
	if page < 1 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return repository.Page{Number: page, Size: size}
}
