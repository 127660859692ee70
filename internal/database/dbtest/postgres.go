// Package dbtest starts a throwaway Postgres for package tests.
package dbtest

import (
	"context"
	"time"

	"cliente-go/internal/database"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StartPostgres runs a postgres container and returns the settings to reach
// it together with its teardown.
func StartPostgres(ctx context.Context) (database.Config, func(context.Context) error, error) {
	var (
		dbName = "testdb"
		dbPwd  = "testpass"
		dbUser = "testuser"
	)

	dbContainer, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return database.Config{}, nil, err
	}

	host, err := dbContainer.Host(ctx)
	if err != nil {
		return database.Config{}, dbContainer.Terminate, err
	}

	port, err := dbContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return database.Config{}, dbContainer.Terminate, err
	}

	cfg := database.Config{
		Host:     host,
		Port:     port.Port(),
		Database: dbName,
		Username: dbUser,
		Password: dbPwd,
		Schema:   "public",
	}
	return cfg, dbContainer.Terminate, nil
}
