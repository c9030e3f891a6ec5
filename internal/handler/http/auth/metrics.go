package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Authentication results used as the "result" label of authRequestsTotal.
const (
	ResultSuccess   = "success"
	ResultAnonymous = "anonymous"
	ResultInvalid   = "invalid"
	ResultExpired   = "expired"
	ResultRequired  = "required"
)

var (
	// authRequestsTotal counts bearer token checks by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication checks by result",
		},
		[]string{"result"},
	)

	// authDuration tracks token verification duration.
	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Bearer token verification duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)
)

// RecordAuthRequest records an authentication check.
func RecordAuthRequest(result string) {
	authRequestsTotal.WithLabelValues(result).Inc()
}

// RecordAuthDuration records token verification duration.
func RecordAuthDuration(durationSeconds float64) {
	authDuration.Observe(durationSeconds)
}
