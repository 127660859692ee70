package database_test

import (
	"context"
	"flag"
	"os"
	"testing"

	"cliente-go/internal/database"
	"cliente-go/internal/database/dbtest"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig database.Config

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	cfg, teardown, err := dbtest.StartPostgres(context.Background())
	if err != nil {
		log.Fatal().
			Err(err).
			Msg("could not start postgres container")
	}
	testConfig = cfg

	code := m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Error().
				Err(err).
				Msg("could not teardown postgres container")
		}
	}
	os.Exit(code)
}

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres tests need docker")
	}

	db, err := database.New(testConfig)
	require.NoError(t, err)
	require.NotNil(t, db)
	return db
}

func TestConfig_Validate(t *testing.T) {
	valid := database.Config{Host: "localhost", Port: "5432", Database: "clientes", Username: "app"}

	tests := []struct {
		name    string
		mutate  func(c *database.Config)
		wantErr bool
	}{
		{"complete", func(c *database.Config) {}, false},
		{"missing host", func(c *database.Config) { c.Host = "" }, true},
		{"missing port", func(c *database.Config) { c.Port = "" }, true},
		{"missing database", func(c *database.Config) { c.Database = "" }, true},
		{"missing username", func(c *database.Config) { c.Username = "" }, true},
		{"password may be empty", func(c *database.Config) { c.Password = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigFromEnv_DefaultSchema(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_SCHEMA", "")

	cfg := database.ConfigFromEnv()
	assert.Equal(t, "db", cfg.Host)
	assert.Equal(t, "public", cfg.Schema)
}

func TestHealth(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	stats := db.Health(context.Background())
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "postgres", stats["backend"])
	_, hasErr := stats["error"]
	assert.False(t, hasErr)
}

func TestHealth_Closed(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Close())

	stats := db.Health(context.Background())
	assert.Equal(t, "down", stats["status"])
	assert.Contains(t, stats["error"], "database ping failed")
}

func TestRepository_BasicOperations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := database.NewRepository(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS test_table (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL
		)
	`)
	require.NoError(t, err)

	t.Run("query row", func(t *testing.T) {
		result, err := db.ExecContext(ctx, "INSERT INTO test_table (name) VALUES ($1)", "test1")
		require.NoError(t, err)
		affected, err := result.RowsAffected()
		assert.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		var name string
		err = repo.QueryRow(ctx, "SELECT name FROM test_table WHERE name = $1", "test1").Scan(&name)
		assert.NoError(t, err)
		assert.Equal(t, "test1", name)
	})

	t.Run("select", func(t *testing.T) {
		_, err := db.ExecContext(ctx, "INSERT INTO test_table (name) VALUES ($1), ($2)", "test2", "test3")
		require.NoError(t, err)

		var names []string
		err = repo.Select(ctx, &names, "SELECT name FROM test_table ORDER BY id")
		assert.NoError(t, err)
		assert.Equal(t, []string{"test1", "test2", "test3"}, names)
	})

	t.Run("error wrapper", func(t *testing.T) {
		baseErr := assert.AnError
		wrapped := repo.Error("test operation", baseErr)
		assert.Contains(t, wrapped.Error(), "repository test operation")
		assert.ErrorIs(t, wrapped, baseErr)
	})
}
