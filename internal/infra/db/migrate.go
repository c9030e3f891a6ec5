package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// MigrateUp applies all pending migrations for driver.
// Returns nil when the schema is already current.
func MigrateUp(ctx context.Context, db *sql.DB, driver string) error {
	m, err := newMigrator(db, driver)
	if err != nil {
		return err
	}

	migrateErr := m.Up()

	version, dirty, versionErr := m.Version()
	fields := []any{slog.String("driver", driver)}
	if versionErr == nil {
		fields = append(fields, slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	} else if !errors.Is(versionErr, migrate.ErrNilVersion) {
		slog.WarnContext(ctx, "failed to fetch migration version", slog.Any("error", versionErr))
	}

	if migrateErr != nil {
		if !errors.Is(migrateErr, migrate.ErrNoChange) {
			return fmt.Errorf("apply migrations: %w", migrateErr)
		}
		slog.InfoContext(ctx, "no migrations to apply", fields...)
		return nil
	}

	slog.InfoContext(ctx, "database migrated", fields...)
	return nil
}

// MigrateDown rolls back every migration. All stored summaries are lost.
func MigrateDown(db *sql.DB, driver string) error {
	m, err := newMigrator(db, driver)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back migrations: %w", err)
	}
	return nil
}

func newMigrator(db *sql.DB, driver string) (*migrate.Migrate, error) {
	var (
		dbInstance database.Driver
		dbName     string
		dir        string
		err        error
	)

	switch driver {
	case DriverPostgres:
		dbInstance, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
		dbName, dir = "pgx5", "migrations/postgres"
	case DriverSQLite:
		dbInstance, err = sqlite3.WithInstance(db, &sqlite3.Config{})
		dbName, dir = "sqlite3", "migrations/sqlite"
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create DB instance: %w", err)
	}

	srcInstance, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("create source instance: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcInstance, dbName, dbInstance)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}
