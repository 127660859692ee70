package database

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// DB wraps the sqlx handle used by the Postgres store
type DB struct {
	*sqlx.DB
}

// Config holds database configuration
type Config struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
}

// ConfigFromEnv reads the DB_* environment variables
func ConfigFromEnv() Config {
	cfg := Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		Database: os.Getenv("DB_DATABASE"),
		Username: os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),
		Schema:   os.Getenv("DB_SCHEMA"),
	}
	if cfg.Schema == "" {
		cfg.Schema = "public"
	}
	return cfg
}

// Validate reports missing connection settings
func (c Config) Validate() error {
	switch {
	case c.Host == "":
		return fmt.Errorf("DB_HOST is required for postgres storage")
	case c.Port == "":
		return fmt.Errorf("DB_PORT is required for postgres storage")
	case c.Database == "":
		return fmt.Errorf("DB_DATABASE is required for postgres storage")
	case c.Username == "":
		return fmt.Errorf("DB_USERNAME is required for postgres storage")
	}
	return nil
}

// New creates a new database connection
func New(cfg Config) (*DB, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.Schema)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{DB: db}, nil
}

// Health returns database health information
func (db *DB) Health(ctx context.Context) map[string]string {
	stats := map[string]string{"backend": "postgres"}

	if err := db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("database ping failed: %v", err)
		return stats
	}

	dbStats := db.Stats()
	stats["status"] = "up"
	stats["open_connections"] = fmt.Sprintf("%d", dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprintf("%d", dbStats.InUse)
	stats["idle"] = fmt.Sprintf("%d", dbStats.Idle)

	return stats
}

// Close closes the database connection
func (db *DB) Close() error {
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing database connection: %w", err)
	}
	log.Info().Msg("Database connection closed")
	return nil
}
