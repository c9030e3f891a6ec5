package circuitbreaker

import (
	"context"
	"database/sql"
	"time"
)

// DBCircuitBreaker guards a *sql.DB. Summary persistence runs in the request
// path, so an unreachable database fails fast instead of holding requests.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig trips after five straight failures and probes again after 30s.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// NewDBCircuitBreaker wraps db using DBConfig.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

// NewDBCircuitBreakerWithConfig wraps db using cfg.
func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{cb: New(cfg), db: db}
}

// QueryContext runs a query through the breaker. An open breaker returns
// ErrOpenState without touching the pool.
func (d *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return Do(d.cb, func() (*sql.Rows, error) {
		return d.db.QueryContext(ctx, query, args...)
	})
}

// ExecContext runs a statement through the breaker.
func (d *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return Do(d.cb, func() (sql.Result, error) {
		return d.db.ExecContext(ctx, query, args...)
	})
}

// PingContext goes straight to the database so health checks see the real state.
func (d *DBCircuitBreaker) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Breaker exposes the underlying breaker for health reporting.
func (d *DBCircuitBreaker) Breaker() *CircuitBreaker {
	return d.cb
}

// IsOpen reports whether queries are currently being rejected.
func (d *DBCircuitBreaker) IsOpen() bool {
	return d.cb.IsOpen()
}
