package metrics

import (
	"time"
)

// Summary outcomes used as the "outcome" label of SummariesTotal.
const (
	OutcomeSuccess             = "success"
	OutcomeInvalidRequest      = "invalid_request"
	OutcomeContentUnavailable  = "content_unavailable"
	OutcomeInsufficientContent = "insufficient_content"
	OutcomeProcessingFailure   = "processing_failure"
)

// RecordSummary records the outcome and duration of one pipeline run.
func RecordSummary(inputType, outcome string, duration time.Duration) {
	if inputType == "" {
		inputType = "unknown"
	}
	SummariesTotal.WithLabelValues(inputType, outcome).Inc()
	SummaryPipelineDuration.WithLabelValues(inputType).Observe(duration.Seconds())
}

// RecordDocumentSentences records how many candidate sentences a document produced.
func RecordDocumentSentences(count int) {
	SummarySentencesTotal.Observe(float64(count))
}

// RecordContentFetchSuccess records a fetch and the size in characters of what it returned.
func RecordContentFetchSuccess(source string, duration time.Duration, size int) {
	ContentFetchAttemptsTotal.WithLabelValues(source, "success").Inc()
	ContentFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	ContentFetchSize.Observe(float64(size))
}

// RecordContentFetchFailed records a failed content fetch operation.
func RecordContentFetchFailed(source string, duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues(source, "failure").Inc()
	ContentFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordSinkWrite records whether persisting a summary succeeded.
func RecordSinkWrite(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	SinkWritesTotal.WithLabelValues(result).Inc()
}

// RecordSummariesPurged adds n removed records to the retention counter.
func RecordSummariesPurged(n int64) {
	if n > 0 {
		SummariesPurgedTotal.Add(float64(n))
	}
}

// RecordRateLimited records a request rejected by the rate limiter.
func RecordRateLimited() {
	RateLimitedTotal.Inc()
}

// RecordDBQuery observes one statement under an operation name such as "insert_summary".
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
