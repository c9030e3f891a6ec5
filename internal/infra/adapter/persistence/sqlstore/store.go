// Package sqlstore implements the summary repository on database/sql.
// The postgres and sqlite adapters differ only in placeholder style.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"briefly/internal/domain/entity"
	"briefly/internal/observability/metrics"
	"briefly/internal/repository"
	"briefly/internal/resilience/circuitbreaker"

	sq "github.com/Masterminds/squirrel"
)

const table = "summaries"

var columns = []string{
	"id", "user_id", "input_type", "source", "summary",
	"key_points", "summary_length", "language", "created_at",
}

// Store is a SummaryRepository over a circuit-breaker protected *sql.DB.
type Store struct {
	db *circuitbreaker.DBCircuitBreaker
	sb sq.StatementBuilderType
}

// New creates a Store. placeholder is sq.Dollar for PostgreSQL and sq.Question for SQLite.
func New(db *sql.DB, placeholder sq.PlaceholderFormat) *Store {
	return &Store{
		db: circuitbreaker.NewDBCircuitBreaker(db),
		sb: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

var _ repository.SummaryRepository = (*Store)(nil)

// Save inserts a record. Key points are stored as a JSON array.
func (s *Store) Save(ctx context.Context, rec *entity.SummaryRecord) error {
	keyPoints, err := json.Marshal(rec.KeyPoints)
	if err != nil {
		return fmt.Errorf("Save: marshal key_points: %w", err)
	}

	query, args, err := s.sb.Insert(table).
		Columns(columns...).
		Values(
			rec.ID.String(), nullString(rec.UserID), string(rec.InputType), rec.Source, rec.Summary,
			string(keyPoints), string(rec.Length), string(rec.Language), rec.CreatedAt.UTC(),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("Save: build query: %w", err)
	}

	start := time.Now()
	_, err = s.db.ExecContext(ctx, query, args...)
	metrics.RecordDBQuery("insert_summary", time.Since(start))
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	return nil
}

// ListByUser returns the newest records of userID first.
func (s *Store) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.SummaryRecord, error) {
	limit = repository.NormalizeLimit(limit)

	query, args, err := s.sb.Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ListByUser: build query: %w", err)
	}

	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("list_summaries", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*entity.SummaryRecord, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByUser: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	return records, nil
}

// DeleteOlderThan removes records created before cutoff.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := s.sb.Delete(table).
		Where(sq.Lt{"created_at": cutoff.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: build query: %w", err)
	}

	start := time.Now()
	res, err := s.db.ExecContext(ctx, query, args...)
	metrics.RecordDBQuery("delete_summaries", time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: rows affected: %w", err)
	}
	return n, nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Breaker returns the circuit breaker guarding the pool.
func (s *Store) Breaker() *circuitbreaker.CircuitBreaker {
	return s.db.Breaker()
}

func scanRecord(rows *sql.Rows) (*entity.SummaryRecord, error) {
	var (
		rec       entity.SummaryRecord
		userID    sql.NullString
		inputType string
		length    string
		language  string
		keyPoints []byte
	)
	if err := rows.Scan(
		&rec.ID, &userID, &inputType, &rec.Source, &rec.Summary,
		&keyPoints, &length, &language, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(keyPoints, &rec.KeyPoints); err != nil {
		return nil, fmt.Errorf("unmarshal key_points: %w", err)
	}

	rec.UserID = userID.String
	rec.InputType = entity.InputType(inputType)
	rec.Length = entity.SummaryLength(length)
	rec.Language = entity.Language(language)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
