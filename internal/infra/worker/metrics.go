package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks scheduled job execution.
//
// Exposed series:
//   - worker_job_runs_total{job,status}: runs by outcome (started, success, failure)
//   - worker_job_duration_seconds{job}: execution time
//   - worker_job_last_success_timestamp{job}: Unix time of the last successful run
type Metrics struct {
	JobRunsTotal         *prometheus.CounterVec
	JobDurationSeconds   *prometheus.HistogramVec
	JobLastSuccessSecond *prometheus.GaugeVec
}

// NewMetrics creates the worker metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		JobRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_job_runs_total",
			Help: "Total number of scheduled job runs by status",
		}, []string{"job", "status"}),

		JobDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of scheduled job execution in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 60, 300},
		}, []string{"job"}),

		JobLastSuccessSecond: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled job run",
		}, []string{"job"}),
	}
}

// RecordJobRun increments the run counter for job with the given status.
func (m *Metrics) RecordJobRun(job, status string) {
	m.JobRunsTotal.WithLabelValues(job, status).Inc()
}

// RecordJobDuration observes a job execution time in seconds.
func (m *Metrics) RecordJobDuration(job string, seconds float64) {
	m.JobDurationSeconds.WithLabelValues(job).Observe(seconds)
}

// RecordLastSuccess stamps the current time as the last success of job.
func (m *Metrics) RecordLastSuccess(job string) {
	m.JobLastSuccessSecond.WithLabelValues(job).SetToCurrentTime()
}
