package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"briefly/internal/domain/entity"
	"briefly/internal/observability/logging"
	"briefly/internal/observability/metrics"
	"briefly/internal/observability/tracing"
	"briefly/internal/utils/text"
)

// minKeyPoints is the floor on key points in every successful response.
const minKeyPoints = 3

// Service provides the summarization use case.
// Each call is independent; the only shared collaborators are the transcript
// source and the optional sink.
type Service struct {
	Transcripts TranscriptSource
	Summarizer  Summarizer
	// Sink is optional. When nil nothing is persisted.
	Sink SummarySink
	// Now is the clock used for GeneratedAt. Defaults to time.Now.
	Now func() time.Time
}

// NewService creates a summarization Service. sink may be nil.
func NewService(transcripts TranscriptSource, summarizer Summarizer, sink SummarySink) *Service {
	return &Service{
		Transcripts: transcripts,
		Summarizer:  summarizer,
		Sink:        sink,
		Now:         time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Summarize runs validate, normalize, segment, score and select, compose, then
// hands the result to the sink. Any failing step stops the pipeline; nothing is
// retried. userID keys the persisted record; anonymous results (empty userID)
// are never persisted.
func (s *Service) Summarize(ctx context.Context, req entity.SummaryRequest, userID string) (resp *entity.SummaryResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "summarize",
		attribute.String("input_type", string(req.InputType)),
		attribute.String("length", string(req.Length)),
		attribute.String("language", string(req.Language)),
	)
	defer func() {
		tracing.EndSpan(span, err)
		metrics.RecordSummary(string(req.InputType), outcome(err), time.Since(start))
	}()

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	content, err := s.normalize(ctx, req)
	if err != nil {
		return nil, err
	}

	sentences := text.SplitSentences(content.Text)
	metrics.RecordDocumentSentences(len(sentences))
	if len(sentences) == 0 {
		return nil, ErrInsufficientContent
	}

	summary, keyPoints, err := s.extract(ctx, sentences, req.Length, content.IsVideo())
	if err != nil {
		return nil, err
	}

	resp = compose(content.SourceLabel, summary, keyPoints, s.now())

	s.persist(ctx, req, resp, userID)
	return resp, nil
}

// ValidateReference checks a video reference without acquiring its content.
func (s *Service) ValidateReference(ctx context.Context, ref string) error {
	if err := entity.ValidateURL("videoReference", ref); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := s.Transcripts.Validate(ctx, ref); err != nil {
		return fmt.Errorf("%w: %w", ErrContentUnavailable, err)
	}
	return nil
}

// normalize turns a validated request into the plain text to summarize.
func (s *Service) normalize(ctx context.Context, req entity.SummaryRequest) (entity.NormalizedContent, error) {
	if req.InputType == entity.InputTypeRawText {
		return entity.NormalizedContent{
			Text:        req.RawText,
			SourceLabel: entity.RawTextSourceLabel,
			Kind:        entity.InputTypeRawText,
		}, nil
	}

	ctx, span := tracing.StartSpan(ctx, "summarize.acquire")
	ctx = entity.WithLanguage(ctx, req.Language)
	transcript, err := s.Transcripts.Fetch(ctx, req.VideoReference)
	if err == nil && strings.TrimSpace(transcript) == "" {
		err = errors.New("source returned no content")
	}
	tracing.EndSpan(span, err)
	if err != nil {
		return entity.NormalizedContent{}, fmt.Errorf("%w: %w", ErrContentUnavailable, err)
	}

	return entity.NormalizedContent{
		Text:        transcript,
		SourceLabel: req.VideoReference,
		Kind:        entity.InputTypeVideoReference,
	}, nil
}

// extract scores and selects. Panics and a short key-point list become ErrProcessingFailure.
func (s *Service) extract(ctx context.Context, sentences []string, length entity.SummaryLength, video bool) (summary string, keyPoints []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrProcessingFailure, r)
		}
	}()

	summary, keyPoints, err = s.Summarizer.Summarize(ctx, sentences, length, video)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrProcessingFailure, err)
	}
	if summary == "" {
		// every selected sentence was punctuation only
		return "", nil, ErrInsufficientContent
	}
	if len(keyPoints) < minKeyPoints {
		return "", nil, fmt.Errorf("%w: summarizer returned %d key points", ErrProcessingFailure, len(keyPoints))
	}
	return summary, keyPoints, nil
}

// compose assembles the response. It copies keyPoints so the response owns its slice.
func compose(source, summary string, keyPoints []string, now time.Time) *entity.SummaryResponse {
	kp := make([]string, len(keyPoints))
	copy(kp, keyPoints)
	return &entity.SummaryResponse{
		Source:      source,
		Summary:     summary,
		KeyPoints:   kp,
		GeneratedAt: now,
	}
}

// persist hands the result to the sink. Failures are logged and counted only.
func (s *Service) persist(ctx context.Context, req entity.SummaryRequest, resp *entity.SummaryResponse, userID string) {
	if s.Sink == nil || userID == "" {
		return
	}

	kp := make([]string, len(resp.KeyPoints))
	copy(kp, resp.KeyPoints)
	record := &entity.SummaryRecord{
		ID:        uuid.New(),
		UserID:    userID,
		InputType: req.InputType,
		Source:    resp.Source,
		Summary:   resp.Summary,
		KeyPoints: kp,
		Length:    req.Length,
		Language:  req.Language,
		CreatedAt: resp.GeneratedAt,
	}

	if err := s.Sink.Save(ctx, record); err != nil {
		metrics.RecordSinkWrite(false)
		logging.WithRequestID(ctx, slog.Default()).WarnContext(ctx, "failed to persist summary",
			slog.String("summary_id", record.ID.String()),
			slog.Any("error", err))
		return
	}
	metrics.RecordSinkWrite(true)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInvalidRequest):
		return metrics.OutcomeInvalidRequest
	case errors.Is(err, ErrContentUnavailable):
		return metrics.OutcomeContentUnavailable
	case errors.Is(err, ErrInsufficientContent):
		return metrics.OutcomeInsufficientContent
	default:
		return metrics.OutcomeProcessingFailure
	}
}
