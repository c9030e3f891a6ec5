package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"briefly/internal/domain/entity"
	"briefly/internal/infra/fetcher"
	"briefly/internal/observability/metrics"
	"briefly/internal/resilience/circuitbreaker"

	"github.com/sony/gobreaker"
)

// SourceYouTube is the metrics label for YouTube transcript fetches.
const SourceYouTube = "youtube"

// YouTubeSource fetches the caption track of a YouTube video as plain text.
//
// Thread safety: YouTubeSource is safe for concurrent use.
type YouTubeSource struct {
	client         *fetcher.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         Config
}

// NewYouTubeSource creates a YouTubeSource using client for all outbound requests.
// Per-video failures such as missing captions never trip its circuit breaker.
func NewYouTubeSource(client *fetcher.Client, config Config) *YouTubeSource {
	cbConfig := circuitbreaker.TranscriptConfig()
	cbConfig.IgnoreErrors = videoErrors
	return &YouTubeSource{
		client:         client,
		circuitBreaker: circuitbreaker.New(cbConfig),
		config:         config,
	}
}

// CircuitBreaker exposes the breaker guarding YouTube requests for health reporting.
func (y *YouTubeSource) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return y.circuitBreaker
}

// Validate checks the URL shape and video id. It performs no network calls.
func (y *YouTubeSource) Validate(_ context.Context, ref string) error {
	_, err := ExtractVideoID(ref)
	return err
}

// Fetch returns the transcript text for the video behind ref.
// The language stored with entity.WithLanguage selects the caption track.
func (y *YouTubeSource) Fetch(ctx context.Context, ref string) (string, error) {
	videoID, err := ExtractVideoID(ref)
	if err != nil {
		return "", err
	}

	preferred, _ := entity.LanguageFromContext(ctx)
	start := time.Now()

	text, err := circuitbreaker.Do(y.circuitBreaker, func() (string, error) {
		return y.doFetch(ctx, videoID, string(preferred))
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.WarnContext(ctx, "youtube transcript circuit breaker open, request rejected",
				slog.String("video_id", videoID),
				slog.String("state", y.circuitBreaker.State().String()))
		}
		metrics.RecordContentFetchFailed(SourceYouTube, time.Since(start))
		return "", err
	}

	metrics.RecordContentFetchSuccess(SourceYouTube, time.Since(start), len(text))
	return text, nil
}

// doFetch performs the page and caption requests without the circuit breaker.
func (y *YouTubeSource) doFetch(ctx context.Context, videoID, preferred string) (string, error) {
	watchURL := strings.TrimRight(y.config.WatchBaseURL, "/") + "/watch?v=" + url.QueryEscape(videoID)

	page, err := y.client.Get(ctx, watchURL)
	if err != nil {
		var statusErr *fetcher.StatusError
		if errors.As(err, &statusErr) &&
			(statusErr.Code == http.StatusNotFound || statusErr.Code == http.StatusGone) {
			return "", fmt.Errorf("%w: watch page %s", ErrVideoUnavailable, statusErr.Status)
		}
		return "", fmt.Errorf("fetch watch page: %w", err)
	}

	playerResponse, err := extractPlayerResponse(page.Body)
	if err != nil {
		return "", err
	}

	tracks, err := parseCaptionTracks(playerResponse)
	if err != nil {
		return "", err
	}

	track := selectTrack(tracks, preferred, y.config.FallbackLanguage)
	trackURL, err := page.URL.Parse(track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("%w: caption URL: %v", fetcher.ErrInvalidURL, err)
	}

	captions, err := y.client.Get(ctx, trackURL.String())
	if err != nil {
		return "", fmt.Errorf("fetch captions: %w", err)
	}

	text, err := decodeTimedText(captions.Body)
	if err != nil {
		return "", err
	}

	slog.DebugContext(ctx, "transcript fetched",
		slog.String("video_id", videoID),
		slog.String("language", track.LanguageCode),
		slog.Bool("auto_generated", track.Kind == "asr"),
		slog.Int("content_length", len(text)))

	return text, nil
}
