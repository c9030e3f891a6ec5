package http

import (
	"net/http"
	"strconv"
	"time"

	"briefly/internal/handler/http/pathutil"
	"briefly/internal/handler/http/responsewriter"
	"briefly/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsMiddleware records count, latency and sizes per route. Paths are
// normalized first so unknown URLs share the "/other" label.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		path := pathutil.NormalizePath(r.URL.Path)
		rw := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(
			r.Method,
			path,
			strconv.Itoa(rw.Status()),
			time.Since(start),
			int(max(r.ContentLength, 0)),
			rw.Bytes(),
		)
	})
}

// MetricsHandler serves the default registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
