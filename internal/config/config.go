package config

import (
	"time"

	"github.com/maxviazov/warehouse-data-service/internal/logger"
)

// Config is the root application configuration. It is loaded once at startup
// and injected into constructors; nothing reads configuration through globals.
type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	API      APIConfig           `mapstructure:"api"`
	Query    QueryConfig         `mapstructure:"query"`
	CORS     CORSConfig          `mapstructure:"cors"`
}

// AppConfig identifies the service and where it listens.
type AppConfig struct {
	Name string `mapstructure:"name" validate:"required"`
	Env  string `mapstructure:"env" validate:"required,oneof=dev staging prod test"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// PostgresConfig carries connection and pool tuning settings. Duration knobs
// are plain seconds so the env and yaml surface stays integer-only.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"db_name" validate:"required"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"min=0"`
	MinConns          int32  `mapstructure:"min_conns" validate:"min=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime" validate:"min=0"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time" validate:"min=0"`
	HealthCheckPeriod int    `mapstructure:"health_check_period" validate:"min=0"`
}

// APIConfig holds the static bearer token protecting the data endpoints.
// An empty token is legal and matches only an empty credential.
type APIConfig struct {
	Token string `mapstructure:"token"`
}

// QueryConfig controls how table pages are read.
type QueryConfig struct {
	// PaginationColumn is the column every served table is expected to carry;
	// it drives ORDER BY and is validated against the catalog per request.
	PaginationColumn string `mapstructure:"pagination_column" validate:"required,pg_identifier"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" validate:"min=0"`
}

// Timeout returns the per-request query budget; zero disables the deadline.
func (q QueryConfig) Timeout() time.Duration {
	return time.Duration(q.TimeoutSeconds) * time.Second
}

// CORSConfig lists allowed origins. The default single "*" allows every
// origin, which is how the service has always been deployed.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}
