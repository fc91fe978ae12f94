package handler

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/warehouse-data-service/internal/service"
	"github.com/maxviazov/warehouse-data-service/pkg/response"
)

// RequireToken guards a route group with a static bearer token. The header
// must carry the Bearer scheme; the credential is compared in constant time.
// An empty configured token only matches an empty presented credential.
func RequireToken(token string) gin.HandlerFunc {
	expected := []byte(token)
	return func(c *gin.Context) {
		scheme, credential, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			response.WriteError(c, service.ErrUnauthorized)
			return
		}
		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(credential)), expected) != 1 {
			response.WriteError(c, service.ErrUnauthorized)
			return
		}
		c.Next()
	}
}
