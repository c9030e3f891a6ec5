package summarize

import (
	"context"

	"briefly/internal/domain/entity"
)

// TranscriptSource acquires plain text for a video reference.
//
// Implementations must guard against SSRF, bound response sizes and carry
// their own timeouts. They must not retry.
type TranscriptSource interface {
	// Fetch returns the spoken or written content behind url as plain text.
	Fetch(ctx context.Context, url string) (string, error)

	// Validate checks that url is a reference this source can handle
	// without returning its content.
	Validate(ctx context.Context, url string) error
}

// Summarizer selects summary sentences and key points from segmented text.
type Summarizer interface {
	Summarize(ctx context.Context, sentences []string, length entity.SummaryLength, video bool) (summary string, keyPoints []string, err error)
}

// SummarySink receives completed summaries. It is optional; a failing sink
// never fails the request.
type SummarySink interface {
	Save(ctx context.Context, record *entity.SummaryRecord) error
}
