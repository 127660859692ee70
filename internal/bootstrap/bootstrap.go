// Package bootstrap opens the configured user store for the entry points.
package bootstrap

import (
	"context"
	"fmt"

	"cliente-go/internal/config"
	"cliente-go/internal/database"
	"cliente-go/internal/database/migrate"
	"cliente-go/internal/dynamo"
	"cliente-go/internal/user"

	"github.com/rs/zerolog/log"
)

// Backend is an opened store plus what the server needs around it.
type Backend struct {
	Store  user.Store
	Health func(ctx context.Context) map[string]string
	Close  func() error
}

// OpenStore connects to the backend named in cfg.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendDynamo:
		return openDynamo(ctx, cfg)
	case config.BackendPostgres:
		return openPostgres(ctx, cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}
}

func openDynamo(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	client, err := dynamo.NewClient(ctx, dynamo.ClientOptions{
		Region:   cfg.Region,
		Endpoint: cfg.Endpoint,
	})
	if err != nil {
		return nil, err
	}

	store := dynamo.New(client, cfg.Table, cfg.EmailIndex)
	return &Backend{
		Store:  store,
		Health: store.Health,
		Close:  func() error { return nil },
	}, nil
}

func openPostgres(ctx context.Context, cfg database.Config) (*Backend, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	if health := db.Health(ctx); health["status"] != "up" {
		_ = db.Close()
		return nil, fmt.Errorf("database health check failed: %s", health["error"])
	}

	if err := migrate.RunMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("Failed to run migrations")
		log.Info().Msg("Attempting to rollback migrations...")

		if rbErr := migrate.RollbackMigrations(db.DB); rbErr != nil {
			log.Error().Err(rbErr).Msg("Failed to rollback migrations after error")
		}
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Backend{
		Store:  user.NewRepository(db),
		Health: db.Health,
		Close:  db.Close,
	}, nil
}
