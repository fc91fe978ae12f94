// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/warehouse-data-service/internal/repository"
	"github.com/maxviazov/warehouse-data-service/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API. Every
// failure, from a rejected token to a lost database, serializes as
// {"detail": "..."}.
type ErrorPayload struct {
	Detail string `json:"detail"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Extend here as new domain error categories emerge.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Detail: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{Detail: flattenFields(service.FieldErrors(err))}
	}

	var cfgErr *repository.ConfigError
	var qErr *repository.QueryError
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorPayload{Detail: "Invalid authentication token"}
	case errors.Is(err, service.ErrNotFound):
		// Not-found errors compose their own client-facing message.
		return http.StatusNotFound, ErrorPayload{Detail: err.Error()}
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError, ErrorPayload{Detail: cfgErr.Error()}
	case errors.As(err, &qErr):
		return http.StatusInternalServerError, ErrorPayload{Detail: qErr.Error()}
	default:
		return http.StatusInternalServerError, ErrorPayload{Detail: fmt.Sprintf("An unexpected error occurred: %v", err)}
	}
}

// flattenFields renders field errors as one human-readable detail line.
func flattenFields(fe []service.FieldError) string {
	if len(fe) == 0 {
		return "one or more fields are invalid"
	}
	parts := make([]string, 0, len(fe))
	for _, f := range fe {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "Invalid request: " + strings.Join(parts, "; ")
}

// WriteError writes an error response and aborts the context. Unauthorized
// responses advertise the expected scheme.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
