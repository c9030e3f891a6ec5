// Package db opens the SQL database backing the summary store and applies its schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"briefly/internal/observability/metrics"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Supported storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects and configures the storage backend.
type Config struct {
	// Driver is one of memory, postgres or sqlite. Default: memory
	Driver string `yaml:"driver" env:"DB_DRIVER"`

	// URL is the postgres DSN or the sqlite file path.
	URL string `yaml:"url" env:"DATABASE_URL"`

	Pool ConnectionConfig `yaml:"pool"`
}

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME"`
}

// DefaultConfig returns an in-memory store configuration.
func DefaultConfig() Config {
	return Config{
		Driver: DriverMemory,
		Pool:   DefaultConnectionConfig(),
	}
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,               // Maximum number of open connections
		MaxIdleConns:    10,               // Maximum number of idle connections
		ConnMaxLifetime: 1 * time.Hour,    // Maximum lifetime of a connection
		ConnMaxIdleTime: 30 * time.Minute, // Maximum idle time of a connection
	}
}

// Validate checks the driver and, for SQL drivers, the URL and pool settings.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverMemory:
		return nil
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want memory, postgres or sqlite)", c.Driver)
	}
	if c.URL == "" {
		return fmt.Errorf("DATABASE_URL is required for driver %q", c.Driver)
	}
	if c.Pool.MaxOpenConns <= 0 || c.Pool.MaxIdleConns < 0 {
		return fmt.Errorf("invalid pool size: max_open=%d max_idle=%d", c.Pool.MaxOpenConns, c.Pool.MaxIdleConns)
	}
	if c.Pool.ConnMaxLifetime < 0 || c.Pool.ConnMaxIdleTime < 0 {
		return fmt.Errorf("connection lifetimes must not be negative")
	}
	return nil
}

// SQLDriverName maps a storage driver to its database/sql driver name.
func SQLDriverName(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "pgx", nil
	case DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("no SQL driver for %q", driver)
	}
}

// Open creates and configures a connection pool and verifies it with a ping.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	driverName, err := SQLDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	applyPool(db, cfg.Driver, cfg.Pool)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.InfoContext(ctx, "database connection established successfully",
		slog.String("driver", cfg.Driver))
	return db, nil
}

func applyPool(db *sql.DB, driver string, cfg ConnectionConfig) {
	maxOpen := cfg.MaxOpenConns
	if driver == DriverSQLite {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY.
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(min(cfg.MaxIdleConns, maxOpen))
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", maxOpen),
		slog.Int("max_idle_conns", min(cfg.MaxIdleConns, maxOpen)),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))
}

// CollectStats publishes pool statistics every interval until ctx is done.
func CollectStats(ctx context.Context, db *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		stats := db.Stats()
		metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
