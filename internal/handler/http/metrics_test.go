package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"briefly/internal/handler/http/pathutil"
	"briefly/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_RecordsNormalizedPath(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/summarize" {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		_, _ = w.Write([]byte("OK"))
	}))

	for _, path := range []string{"/api/summarize", "/wp-admin", "/.git/config", "/health"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("POST", "/api/summarize", "422")); got != 1 {
		t.Errorf("summarize 422 count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("POST", pathutil.UnmatchedPath, "200")); got != 2 {
		t.Errorf("unmatched count = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(metrics.HTTPRequestsTotal); got != 3 {
		t.Errorf("label sets = %d, want 3", got)
	}
}

func TestMetricsMiddleware_ActiveConnectionsReturnToZero(t *testing.T) {
	before := testutil.ToFloat64(metrics.ActiveConnections)

	var during float64
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(metrics.ActiveConnections)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/live", nil))

	if during != before+1 {
		t.Errorf("in-flight gauge = %v, want %v", during, before+1)
	}
	if after := testutil.ToFloat64(metrics.ActiveConnections); after != before {
		t.Errorf("gauge after request = %v, want %v", after, before)
	}
}

func TestMetricsHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("expected default Go collector metrics in output")
	}
}
