// Package history provides read and retention use cases over stored summaries.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"briefly/internal/domain/entity"
	"briefly/internal/observability/metrics"
	"briefly/internal/repository"
)

// ErrStorageDisabled is returned when no repository is configured.
var ErrStorageDisabled = errors.New("summary storage is disabled")

// Service provides summary history use cases.
type Service struct {
	Repo repository.SummaryRepository
	Now  func() time.Time
}

// NewService creates a history Service. repo may be nil when persistence is disabled.
func NewService(repo repository.SummaryRepository) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Enabled reports whether a repository is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.Repo != nil
}

// List returns the user's stored summaries, newest first.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]*entity.SummaryRecord, error) {
	if !s.Enabled() {
		return nil, ErrStorageDisabled
	}
	if userID == "" {
		return nil, &entity.ValidationError{Field: "user", Message: "is required"}
	}

	records, err := s.Repo.ListByUser(ctx, userID, repository.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	return records, nil
}

// Purge deletes summaries older than retention and returns how many were removed.
func (s *Service) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	if !s.Enabled() {
		return 0, ErrStorageDisabled
	}
	if retention <= 0 {
		return 0, &entity.ValidationError{Field: "retention", Message: "must be positive"}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	n, err := s.Repo.DeleteOlderThan(ctx, now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("purge summaries: %w", err)
	}
	metrics.RecordSummariesPurged(n)
	return n, nil
}
