package config

import (
	"fmt"
	"os"
	"strconv"

	"cliente-go/internal/database"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

const (
	BackendDynamo   = "dynamodb"
	BackendPostgres = "postgres"

	defaultTable      = "Cliente"
	defaultEmailIndex = "EmailIndex"
)

// Config holds service configuration
type Config struct {
	Port      int    // Port the HTTP server listens on
	Env       string // Environment (development | production)
	LogFormat string // console | json
	Store     StoreConfig
}

// StoreConfig selects and configures the user store
type StoreConfig struct {
	// Backend type ("dynamodb" or "postgres")
	Backend string

	// DynamoDB config
	Table      string
	EmailIndex string
	Region     string
	Endpoint   string

	// Postgres config
	Database database.Config
}

func (c *Config) Log() {
	ev := log.Info().
		Int("port", c.Port).
		Str("env", c.Env).
		Str("log_format", c.LogFormat).
		Str("store_backend", c.Store.Backend)

	switch c.Store.Backend {
	case BackendDynamo:
		ev = ev.Str("table", c.Store.Table).
			Str("email_index", c.Store.EmailIndex).
			Str("region", c.Store.Region).
			Str("endpoint", c.Store.Endpoint)
	case BackendPostgres:
		ev = ev.Str("db_host", c.Store.Database.Host).
			Str("db_database", c.Store.Database.Database)
	}
	ev.Msg("service configuration")
}

// NewConfig creates the configuration from environment variables
func NewConfig() (*Config, error) {
	portStr := getenv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		log.Error().Err(err).Str("port", portStr).Msg("invalid PORT environment variable")
		return nil, fmt.Errorf("invalid PORT: %q", portStr)
	}

	env := getenv("APP_ENV", "production")

	logFormat := os.Getenv("LOG_FORMAT")
	switch logFormat {
	case "":
		logFormat = "console"
	case "console", "json":
	default:
		log.Error().Str("log_format", logFormat).Msg("invalid LOG_FORMAT environment variable")
		return nil, fmt.Errorf("unsupported LOG_FORMAT: %s", logFormat)
	}

	store := StoreConfig{
		Backend:    getenv("STORE_BACKEND", BackendDynamo),
		Table:      getenv("DYNAMODB_TABLE", defaultTable),
		EmailIndex: getenv("DYNAMODB_EMAIL_INDEX", defaultEmailIndex),
		Region:     os.Getenv("AWS_REGION"),
		Endpoint:   os.Getenv("DYNAMODB_ENDPOINT"),
		Database:   database.ConfigFromEnv(),
	}

	if err := validateStoreConfig(store); err != nil {
		log.Error().Err(err).Msg("invalid store configuration")
		return nil, fmt.Errorf("invalid store configuration: %w", err)
	}

	return &Config{
		Port:      port,
		Env:       env,
		LogFormat: logFormat,
		Store:     store,
	}, nil
}

// validateStoreConfig ensures the selected backend has what it needs
func validateStoreConfig(cfg StoreConfig) error {
	switch cfg.Backend {
	case BackendDynamo:
		if cfg.Table == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required for dynamodb storage")
		}
		if cfg.EmailIndex == "" {
			return fmt.Errorf("DYNAMODB_EMAIL_INDEX is required for dynamodb storage")
		}
	case BackendPostgres:
		return cfg.Database.Validate()
	default:
		return fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
