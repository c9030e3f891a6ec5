package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"briefly/internal/observability/metrics"
	"briefly/internal/resilience/circuitbreaker"

	"github.com/go-shiori/go-readability"
)

// SourcePage is the metrics label for page fetches.
const SourcePage = "page"

// ReadabilityFetcher reads the main text of an arbitrary web page using the
// Mozilla Readability algorithm (go-shiori/go-readability).
//
// Thread safety: ReadabilityFetcher is safe for concurrent use.
type ReadabilityFetcher struct {
	client         *Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewReadabilityFetcher creates a ReadabilityFetcher with its own HTTP client
// and the page-fetch circuit breaker.
//
// Example:
//
//	f := NewReadabilityFetcher(DefaultConfig())
//	text, err := f.Fetch(ctx, "https://example.com/article")
func NewReadabilityFetcher(config ContentFetchConfig) *ReadabilityFetcher {
	return NewReadabilityFetcherWithClient(NewClient(config))
}

// NewReadabilityFetcherWithClient creates a ReadabilityFetcher sharing an existing client.
func NewReadabilityFetcherWithClient(client *Client) *ReadabilityFetcher {
	return &ReadabilityFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.PageFetchConfig()),
	}
}

// CircuitBreaker exposes the page-fetch breaker for health reporting.
func (f *ReadabilityFetcher) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return f.circuitBreaker
}

// Fetch downloads the page and returns its readable text.
func (f *ReadabilityFetcher) Fetch(ctx context.Context, urlStr string) (string, error) {
	if err := f.Validate(ctx, urlStr); err != nil {
		return "", err
	}

	start := time.Now()
	text, err := circuitbreaker.Do(f.circuitBreaker, func() (string, error) {
		return f.doFetch(ctx, urlStr)
	})
	if err != nil {
		metrics.RecordContentFetchFailed(SourcePage, time.Since(start))
		return "", err
	}

	metrics.RecordContentFetchSuccess(SourcePage, time.Since(start), len(text))
	return text, nil
}

// Validate checks that the reference is a fetchable public http(s) URL
// without downloading it.
func (f *ReadabilityFetcher) Validate(ctx context.Context, urlStr string) error {
	return ValidateURL(ctx, urlStr, f.client.Config().DenyPrivateIPs)
}

func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (string, error) {
	resp, err := f.client.Get(ctx, urlStr)
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(bytes.NewReader(resp.Body), resp.URL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadabilityFailed, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("%w: no readable content found", ErrReadabilityFailed)
	}

	slog.DebugContext(ctx, "page content extracted",
		slog.String("url", resp.URL.String()),
		slog.Int("content_length", len(text)))

	return text, nil
}
