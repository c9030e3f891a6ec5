package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSummary(t *testing.T) {
	tests := []struct {
		name      string
		inputType string
		wantLabel string
		outcome   string
	}{
		{name: "raw text success", inputType: "raw_text", wantLabel: "raw_text", outcome: OutcomeSuccess},
		{name: "video unavailable", inputType: "video_reference", wantLabel: "video_reference", outcome: OutcomeContentUnavailable},
		{name: "unknown input type", inputType: "", wantLabel: "unknown", outcome: OutcomeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := SummariesTotal.WithLabelValues(tt.wantLabel, tt.outcome)
			before := testutil.ToFloat64(c)

			RecordSummary(tt.inputType, tt.outcome, 15*time.Millisecond)

			assert.Equal(t, before+1, testutil.ToFloat64(c))
		})
	}
}

func TestRecordContentFetch(t *testing.T) {
	success := ContentFetchAttemptsTotal.WithLabelValues("youtube", "success")
	failure := ContentFetchAttemptsTotal.WithLabelValues("youtube", "failure")
	beforeOK, beforeFail := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	RecordContentFetchSuccess("youtube", 300*time.Millisecond, 4096)
	RecordContentFetchFailed("youtube", time.Second)

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(success))
	assert.Equal(t, beforeFail+1, testutil.ToFloat64(failure))
}

func TestRecordSinkWrite(t *testing.T) {
	ok := SinkWritesTotal.WithLabelValues("success")
	failed := SinkWritesTotal.WithLabelValues("failure")
	beforeOK, beforeFail := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordSinkWrite(true)
	RecordSinkWrite(false)
	RecordSinkWrite(false)

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(ok))
	assert.Equal(t, beforeFail+2, testutil.ToFloat64(failed))
}

func TestRecordSummariesPurged(t *testing.T) {
	before := testutil.ToFloat64(SummariesPurgedTotal)

	RecordSummariesPurged(0)
	RecordSummariesPurged(-3)
	RecordSummariesPurged(4)

	assert.Equal(t, before+4, testutil.ToFloat64(SummariesPurgedTotal))
}

func TestRecordRateLimited(t *testing.T) {
	before := testutil.ToFloat64(RateLimitedTotal)
	RecordRateLimited()
	assert.Equal(t, before+1, testutil.ToFloat64(RateLimitedTotal))
}

func TestRecordHTTPRequest(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest("POST", "/api/summarize", "200", 20*time.Millisecond, 512, 1024)
		RecordHTTPRequest("GET", "/health", "200", time.Millisecond, 0, 0)
	})
	assert.GreaterOrEqual(t, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/summarize", "200")), 1.0)
}

func TestRecordDBQueryAndConnections(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordDBQuery("insert_summary", 2*time.Millisecond)
		RecordDocumentSentences(12)
	})

	UpdateDBConnectionStats(3, 7)
	assert.Equal(t, 3.0, testutil.ToFloat64(DBConnectionsActive))
	assert.Equal(t, 7.0, testutil.ToFloat64(DBConnectionsIdle))
}
