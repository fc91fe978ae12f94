package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/warehouse-data-service/internal/metrics"
	"github.com/maxviazov/warehouse-data-service/internal/service"
	"github.com/rs/zerolog"
)

// Options carries the cross-cutting knobs Register needs beyond the service
// dependencies.
type Options struct {
	Token        string
	QueryTimeout time.Duration
	AllowOrigins []string
	Logger       zerolog.Logger
}

// Register mounts middleware and all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, repo Pinger, dataSvc service.TableDataService, opts Options) {
	r.Use(RequestID())
	r.Use(RequestLogger(opts.Logger))
	r.Use(metrics.Collect())
	r.Use(cors.New(corsConfig(opts.AllowOrigins)))

	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/health", h.Health)
	r.GET("/ready", h.Readiness)

	// Operational endpoints (root-level)
	r.GET("/metrics", metrics.Handler())
	RegisterDocs(r)

	api := r.Group(APIPrefix, RequireToken(opts.Token))
	{
		NewTableDataHandler(dataSvc, opts.QueryTimeout).Register(api)
	}
}

// corsConfig translates the configured origin list into gin-contrib/cors
// settings. A literal "*" switches to allow-all, which the library only
// accepts with credentials disabled.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
