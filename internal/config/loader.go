package config

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// identRe matches the unquoted PostgreSQL identifier shape. The service layer
// applies the same allow-list to request parameters; here it guards the
// configured pagination column at startup instead of on the first request.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// Load reads configuration in layers: bundled defaults, an optional YAML file,
// then environment variables. Env always wins. Every key answers to its
// APP_-prefixed spelling plus the short names the deployment has always used
// (DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD, PAGINATION_COLUMN,
// API_TOKEN).
func Load(path string) (*Config, error) {
	// Best-effort .env bootstrap so local runs need no exported variables.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	bindAliases(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			// The file is optional; env-only deployments are the norm.
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := newValidator().Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &config, nil
}

func newValidator() *validator.Validate {
	validate := validator.New()
	// Registration only fails for an empty tag name.
	_ = validate.RegisterValidation("pg_identifier", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) <= 63 && identRe.MatchString(s)
	})
	return validate
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "warehouse-data-service")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8000)

	// Empty defaults register the keys so environment overrides bind; the
	// logger package fills real defaults for whatever stays empty.
	v.SetDefault("logger.env", "")
	v.SetDefault("logger.level", "")
	v.SetDefault("logger.format", "")
	v.SetDefault("logger.output_target", "")
	v.SetDefault("logger.time_field", "")
	v.SetDefault("logger.time_format", "")
	v.SetDefault("logger.service_name", "")
	v.SetDefault("logger.service_version", "")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db_name", "warehouse")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 60)

	v.SetDefault("api.token", "")
	v.SetDefault("query.pagination_column", "id")
	v.SetDefault("query.timeout_seconds", 30)
	v.SetDefault("cors.allow_origins", []string{"*"})
}

// bindAliases attaches the short env names next to the APP_ spellings.
// The first name that is set wins, mirroring how the contract-test harness
// resolves its own connection settings.
func bindAliases(v *viper.Viper) {
	aliases := map[string][]string{
		"postgres.host":           {"APP_POSTGRES_HOST", "DB_HOST"},
		"postgres.port":           {"APP_POSTGRES_PORT", "DB_PORT"},
		"postgres.user":           {"APP_POSTGRES_USER", "DB_USER"},
		"postgres.password":       {"APP_POSTGRES_PASSWORD", "DB_PASSWORD"},
		"postgres.db_name":        {"APP_POSTGRES_DB_NAME", "DB_NAME"},
		"query.pagination_column": {"APP_QUERY_PAGINATION_COLUMN", "PAGINATION_COLUMN"},
		"api.token":               {"APP_API_TOKEN", "API_TOKEN"},
	}
	for key, names := range aliases {
		_ = v.BindEnv(append([]string{key}, names...)...)
	}
}
