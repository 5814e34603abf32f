package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const migrationsDir = "migrations"

// RunMigrations applies the embedded event_logs schema. It is a no-op when
// the mirror is already up to date.
func RunMigrations(db *sql.DB, migrationFS fs.FS) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: "rpsboard_migrations"})
	if err != nil {
		return fmt.Errorf("could not create database driver: %w", err)
	}

	src, err := iofs.New(migrationFS, migrationsDir)
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}
	defer src.Close()

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run up migrations: %w", err)
	}
	return nil
}
