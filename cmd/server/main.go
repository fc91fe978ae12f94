package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/warehouse-data-service/internal/config"
	"github.com/maxviazov/warehouse-data-service/internal/handler"
	"github.com/maxviazov/warehouse-data-service/internal/logger"
	"github.com/maxviazov/warehouse-data-service/internal/repository"
	"github.com/maxviazov/warehouse-data-service/internal/repository/postgres"
	"github.com/maxviazov/warehouse-data-service/internal/service"
)

const shutdownGrace = 10 * time.Second

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Load application config
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	repo, err := repository.New(context.Background(), cfg, &appLogger)
	if err != nil {
		log.Fatalf("❌ Postgres connection failed: %v", err)
	}
	defer repo.Close()

	pool := repo.Pool()
	introspector := postgres.NewSchemaIntrospector(pool)
	reader := postgres.NewTableReader(pool, cfg.Query.PaginationColumn, appLogger)
	dataSvc := service.NewTableDataService(introspector, reader, appLogger)

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	handler.Register(r, postgres.NewPinger(pool), dataSvc, handler.Options{
		Token:        cfg.API.Token,
		QueryTimeout: cfg.Query.Timeout(),
		AllowOrigins: cfg.CORS.AllowOrigins,
		Logger:       appLogger,
	})

	addr := net.JoinHostPort(cfg.App.Host, strconv.Itoa(cfg.App.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		appLogger.Info().Str("addr", addr).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error().Err(err).Msg("forced shutdown")
	}
	appLogger.Info().Msg("service stopped")
}
