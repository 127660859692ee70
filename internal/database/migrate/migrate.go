package migrate

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func newMigrate(db *sqlx.DB) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create postgres driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("could not create source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// RunMigrations applies all pending migrations
func RunMigrations(db *sqlx.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Debug().Msg("No migrations to run")
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("could not get migration version: %w", err)
	}

	log.Info().
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("Migrations completed")
	return nil
}

// RollbackMigrations rolls every migration back
func RollbackMigrations(db *sqlx.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	err = m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Debug().Msg("No migrations to rollback")
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not rollback migrations: %w", err)
	}

	log.Info().Msg("Migration rollback completed")
	return nil
}
