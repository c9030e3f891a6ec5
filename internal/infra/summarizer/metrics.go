package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SummaryMetricsRecorder receives per-summary observations.
type SummaryMetricsRecorder interface {
	// RecordLength observes the summary length in runes.
	RecordLength(length int)
	RecordSentences(count int)
	// RecordPadded counts key points filled from the padding pool.
	RecordPadded(n int)
	RecordDuration(duration time.Duration)
}

// SummaryMetrics records to Prometheus.
type SummaryMetrics struct {
	length    prometheus.Histogram
	sentences prometheus.Histogram
	padded    prometheus.Counter
	duration  prometheus.Histogram
}

// NewSummaryMetrics registers the summarizer collectors with reg.
func NewSummaryMetrics(reg prometheus.Registerer) *SummaryMetrics {
	f := promauto.With(reg)
	return &SummaryMetrics{
		length: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "summary_length_characters",
			Help:    "Summary length in characters.",
			Buckets: prometheus.ExponentialBuckets(50, 2, 7),
		}),
		sentences: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "summary_sentences_selected",
			Help:    "Sentences selected into a summary.",
			Buckets: prometheus.LinearBuckets(1, 1, 7),
		}),
		padded: f.NewCounter(prometheus.CounterOpts{
			Name: "summary_key_points_padded_total",
			Help: "Key points filled with padding statements.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "summary_selection_duration_seconds",
			Help:    "Time to score and select sentences.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}

// defaultMetrics registers once with the default registry.
var defaultMetrics = sync.OnceValue(func() *SummaryMetrics {
	return NewSummaryMetrics(prometheus.DefaultRegisterer)
})

func (m *SummaryMetrics) RecordLength(length int)   { m.length.Observe(float64(length)) }
func (m *SummaryMetrics) RecordSentences(count int) { m.sentences.Observe(float64(count)) }
func (m *SummaryMetrics) RecordPadded(n int)        { m.padded.Add(float64(n)) }

func (m *SummaryMetrics) RecordDuration(d time.Duration) {
	m.duration.Observe(d.Seconds())
}

type noopRecorder struct{}

func (noopRecorder) RecordLength(int)             {}
func (noopRecorder) RecordSentences(int)          {}
func (noopRecorder) RecordPadded(int)             {}
func (noopRecorder) RecordDuration(time.Duration) {}
