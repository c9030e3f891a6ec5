// Package sqlite provides the SQLite summary repository.
package sqlite

import (
	"database/sql"

	"briefly/internal/infra/adapter/persistence/sqlstore"
	"briefly/internal/repository"

	sq "github.com/Masterminds/squirrel"
)

// NewSummaryRepo returns a repository over a go-sqlite3 *sql.DB.
func NewSummaryRepo(db *sql.DB) repository.SummaryRepository {
	return sqlstore.New(db, sq.Question)
}
