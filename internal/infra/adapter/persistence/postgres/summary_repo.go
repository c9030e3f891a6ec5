// Package postgres provides the PostgreSQL summary repository.
package postgres

import (
	"database/sql"

	"briefly/internal/infra/adapter/persistence/sqlstore"
	"briefly/internal/repository"

	sq "github.com/Masterminds/squirrel"
)

// NewSummaryRepo returns a repository over a pgx-backed *sql.DB.
func NewSummaryRepo(db *sql.DB) repository.SummaryRepository {
	return sqlstore.New(db, sq.Dollar)
}
