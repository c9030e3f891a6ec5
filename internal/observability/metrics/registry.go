package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// byteBuckets spans 100B to 1GB in decades.
var byteBuckets = prometheus.ExponentialBuckets(100, 10, 8)

// HTTP traffic. The path label is always a normalized route.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_size_bytes",
		Help:    "Declared HTTP request body size.",
		Buckets: byteBuckets,
	}, []string{"method", "path"})

	HTTPResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_response_size_bytes",
		Help:    "HTTP response body size.",
		Buckets: byteBuckets,
	}, []string{"method", "path"})

	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_active_connections",
		Help: "In-flight HTTP requests.",
	})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Requests rejected by the per-IP rate limiter.",
	})
)

// Summarization pipeline and its collaborators.
var (
	// SummariesTotal outcome is one of the Outcome* constants.
	SummariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "summaries_total",
		Help: "Summary requests by input type and outcome.",
	}, []string{"input_type", "outcome"})

	SummaryPipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "summary_pipeline_duration_seconds",
		Help:    "Time to produce a summary, content acquisition included.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"input_type"})

	SummarySentencesTotal = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "summary_document_sentences",
		Help:    "Candidate sentences per summarized document.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	// source is youtube or page; result is success or failure.
	ContentFetchAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_fetch_attempts_total",
		Help: "Transcript and page fetch attempts.",
	}, []string{"source", "result"})

	ContentFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_fetch_duration_seconds",
		Help:    "Time to fetch a transcript or page.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
	}, []string{"source"})

	ContentFetchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "content_fetch_size_chars",
		Help:    "Fetched content length in characters.",
		Buckets: prometheus.ExponentialBuckets(100, 4, 8),
	})

	SinkWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "summary_sink_writes_total",
		Help: "Summary persistence attempts by result.",
	}, []string{"result"})

	SummariesPurgedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "summaries_purged_total",
		Help: "Stored summaries removed by the retention job.",
	})
)

// SQL storage.
var (
	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "SQL statement latency by operation.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
	}, []string{"operation"})

	DBConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_active",
		Help: "Pool connections in use.",
	})

	DBConnectionsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_idle",
		Help: "Idle pool connections.",
	})
)

// RecordHTTPRequest records one finished request. Zero sizes are not observed.
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
