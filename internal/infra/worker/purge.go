// Package worker runs background jobs on a cron schedule.
package worker

import (
	"context"
	"log/slog"
	"time"

	"briefly/internal/handler/http/respond"
)

// PurgeJobName labels the retention purge in logs and metrics.
const PurgeJobName = "summary_purge"

// Purger deletes records older than a retention window.
type Purger interface {
	Purge(ctx context.Context, retention time.Duration) (int64, error)
}

// PurgeJob removes stored summaries that have outlived MaxAge.
type PurgeJob struct {
	Purger  Purger
	MaxAge  time.Duration
	Timeout time.Duration
	Logger  *slog.Logger
	Metrics *Metrics
}

// Name implements Job.
func (j *PurgeJob) Name() string { return PurgeJobName }

// Run executes a single purge with timeout and error handling.
func (j *PurgeJob) Run(ctx context.Context) error {
	start := time.Now()
	j.Metrics.RecordJobRun(PurgeJobName, "started")
	j.Logger.Info("purge started", slog.Duration("max_age", j.MaxAge))

	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	deleted, err := j.Purger.Purge(ctx, j.MaxAge)
	j.Metrics.RecordJobDuration(PurgeJobName, time.Since(start).Seconds())
	if err != nil {
		j.Logger.Error("purge failed", slog.String("error", respond.SanitizeError(err)))
		j.Metrics.RecordJobRun(PurgeJobName, "failure")
		return err
	}

	j.Metrics.RecordJobRun(PurgeJobName, "success")
	j.Metrics.RecordLastSuccess(PurgeJobName)
	j.Logger.Info("purge completed",
		slog.Int64("deleted", deleted),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}
