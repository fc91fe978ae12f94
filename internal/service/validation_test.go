package service

import (
	"strings"
	"testing"

	"github.com/maxviazov/warehouse-data-service/internal/repository"
)

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"stores", "_private", "a", "Table1", "col$2", "analytics_v2", strings.Repeat("a", 63)}
	for _, s := range valid {
		if !isValidIdentifier(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}

	invalid := []string{"", "1abc", "a-b", "a b", "a;b", "a.b", `a"b`, "таблица", strings.Repeat("a", 64)}
	for _, s := range invalid {
		if isValidIdentifier(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name string
		page int
		size int
		want repository.Page
	}{
		{"zero values take defaults", 0, 0, repository.Page{Number: DefaultPage, Size: DefaultPageSize}},
		{"negative page", -1, 10, repository.Page{Number: 1, Size: 10}},
		{"negative size", 2, -1, repository.Page{Number: 2, Size: DefaultPageSize}},
		{"size above cap", 1, MaxPageSize + 1, repository.Page{Number: 1, Size: MaxPageSize}},
		{"size at cap", 1, MaxPageSize, repository.Page{Number: 1, Size: MaxPageSize}},
		{"ordinary values untouched", 7, 42, repository.Page{Number: 7, Size: 42}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := normalizePage(test.page, test.size); got != test.want {
				t.Fatalf("expected %+v, got %+v", test.want, got)
			}
		})
	}
}
