package repository

import (
	"context"
	"time"

	"briefly/internal/domain/entity"
)

// DefaultListLimit and MaxListLimit bound ListByUser.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// SummaryRepository stores completed summaries.
// Implementations must be safe for concurrent use; writes from concurrent
// requests carry no ordering guarantee.
type SummaryRepository interface {
	// Save stores a record. The record ID must already be set.
	Save(ctx context.Context, record *entity.SummaryRecord) error
	// ListByUser returns the user's records, newest first, at most limit entries.
	// Returns an empty slice (not nil) if nothing is stored for the user.
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.SummaryRecord, error)
	// DeleteOlderThan removes records created before cutoff and reports how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// NormalizeLimit clamps a requested list size into [1, MaxListLimit],
// using DefaultListLimit for non-positive values.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
