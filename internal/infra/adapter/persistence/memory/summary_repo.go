// Package memory provides an in-process summary repository.
// Contents are lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"briefly/internal/domain/entity"
	"briefly/internal/repository"
)

// SummaryRepo keeps records in a slice guarded by a RWMutex.
type SummaryRepo struct {
	mu      sync.RWMutex
	records []*entity.SummaryRecord
}

// NewSummaryRepo creates an empty repository.
func NewSummaryRepo() *SummaryRepo {
	return &SummaryRepo{}
}

var _ repository.SummaryRepository = (*SummaryRepo)(nil)

// Save stores a copy of rec.
func (r *SummaryRepo) Save(_ context.Context, rec *entity.SummaryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, clone(rec))
	return nil
}

// ListByUser returns copies of the user's records, newest first.
func (r *SummaryRepo) ListByUser(_ context.Context, userID string, limit int) ([]*entity.SummaryRecord, error) {
	limit = repository.NormalizeLimit(limit)

	r.mu.RLock()
	matches := make([]*entity.SummaryRecord, 0, limit)
	for _, rec := range r.records {
		if rec.UserID == userID {
			matches = append(matches, clone(rec))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID.String() > matches[j].ID.String()
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// DeleteOlderThan drops records created before cutoff.
func (r *SummaryRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	var removed int64
	for _, rec := range r.records {
		if rec.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	clear(r.records[len(kept):])
	r.records = kept
	return removed, nil
}

// Ping always succeeds.
func (r *SummaryRepo) Ping(context.Context) error {
	return nil
}

// Len reports the number of stored records.
func (r *SummaryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func clone(rec *entity.SummaryRecord) *entity.SummaryRecord {
	c := *rec
	c.KeyPoints = append([]string(nil), rec.KeyPoints...)
	return &c
}
