// Package service holds business logic orchestration between handlers and repositories.
// Kept intentionally lean: use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/maxviazov/warehouse-data-service/internal/model"
)

// Paging defaults applied when a request omits or under-specifies them.
const (
	DefaultPage     = 1
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

var (
	// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
	// Field-level details are retrieved via FieldErrors(err).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks lookups that resolved to no table or no columns (maps to HTTP 404).
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a missing or mismatched bearer token (maps to HTTP 401).
	ErrUnauthorized = errors.New("invalid authentication token")
)

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInput builds an aggregated validation error if any field errors are present.
// Handlers use it for query-string parsing failures, services for domain validation.
func NewInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// notFoundError carries the client-facing message and unwraps to ErrNotFound.
type notFoundError struct{ msg string }

func (e *notFoundError) Error() string { return e.msg }
func (e *notFoundError) Unwrap() error { return ErrNotFound }

func newNotFound(format string, args ...any) error {
	return &notFoundError{msg: fmt.Sprintf(format, args...)}
}

// TableDataRequest is one paginated read of a warehouse table.
// District is nil when the filter parameter was absent or empty.
type TableDataRequest struct {
	Schema   string
	Table    string
	District *string
	Page     int
	PageSize int
}

// TableDataService defines the read-only table access use case.
type TableDataService interface {
	FetchTableData(ctx context.Context, req TableDataRequest) (model.TableData, error)
}
