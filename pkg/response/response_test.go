package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/warehouse-data-service/internal/repository"
	"github.com/maxviazov/warehouse-data-service/internal/service"
	"github.com/maxviazov/warehouse-data-service/pkg/response"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		in         error
		wantCode   int
		wantDetail string
	}{
		{
			"invalid_input",
			service.NewInvalidInput([]service.FieldError{{Field: "page", Message: "must be an integer"}}),
			http.StatusBadRequest,
			"Invalid request: page must be an integer",
		},
		{
			"invalid_input_multiple_fields",
			service.NewInvalidInput([]service.FieldError{
				{Field: "page", Message: "must be an integer"},
				{Field: "page_size", Message: "must be an integer"},
			}),
			http.StatusBadRequest,
			"Invalid request: page must be an integer; page_size must be an integer",
		},
		{
			"unauthorized",
			service.ErrUnauthorized,
			http.StatusUnauthorized,
			"Invalid authentication token",
		},
		{
			"wrapped_unauthorized",
			fmt.Errorf("auth middleware: %w", service.ErrUnauthorized),
			http.StatusUnauthorized,
			"Invalid authentication token",
		},
		{
			"not_found_marker",
			service.ErrNotFound,
			http.StatusNotFound,
			"not found",
		},
		{
			"config_error",
			&repository.ConfigError{Column: "id", Schema: "analytics", Table: "events"},
			http.StatusInternalServerError,
			"Pagination column 'id' not found in table columns",
		},
		{
			"query_error",
			repository.NewQueryError("query table data", errors.New("boom")),
			http.StatusInternalServerError,
			"query table data: boom",
		},
		{
			"unexpected",
			errors.New("kaput"),
			http.StatusInternalServerError,
			"An unexpected error occurred: kaput",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			if code != tc.wantCode || payload.Detail != tc.wantDetail {
				t.Fatalf("unexpected mapping: got (%d,%q) want (%d,%q)", code, payload.Detail, tc.wantCode, tc.wantDetail)
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	code, _ := response.MapError(nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestWriteError_UnauthorizedAdvertisesScheme(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/data", nil)

	response.WriteError(c, service.ErrUnauthorized)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer, got %q", got)
	}
	if !strings.Contains(w.Body.String(), `"detail":"Invalid authentication token"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestWriteError_OtherStatusesSkipChallenge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/data", nil)

	response.WriteError(c, service.ErrNotFound)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); got != "" {
		t.Fatalf("did not expect a challenge header, got %q", got)
	}
}
