// Package summarizer implements extractive summarization: sentences are scored by
// document-wide term frequency and the best ones are selected verbatim.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"briefly/internal/domain/entity"
	"briefly/internal/utils/text"
)

// ErrNoSentences is returned when there is nothing to summarize.
var ErrNoSentences = errors.New("no sentences to summarize")

// Result is the outcome of selection.
type Result struct {
	Summary   string
	KeyPoints []string
	// Sentences is the number of sentences placed in the summary.
	Sentences int
	// Padded is the number of key points that came from padding statements.
	Padded int
}

// ScoreSentences builds the document-wide term frequency table and scores each
// sentence by the sum of the counts of its content words.
//
// Scores are not normalized by sentence length, so longer sentences that repeat
// shared vocabulary rank higher.
func ScoreSentences(sentences []string) []entity.Sentence {
	tokens := make([][]string, len(sentences))
	freq := make(map[string]int)
	for i, s := range sentences {
		tokens[i] = text.Tokenize(s)
		for _, tok := range tokens[i] {
			freq[tok]++
		}
	}

	scored := make([]entity.Sentence, len(sentences))
	for i, s := range sentences {
		score := 0
		for _, tok := range tokens[i] {
			score += freq[tok]
		}
		scored[i] = entity.Sentence{Index: i, Text: s, Score: score}
	}
	return scored
}

// Rank returns a copy of scored ordered by score descending, ties broken by
// document position ascending.
func Rank(scored []entity.Sentence) []entity.Sentence {
	ranked := make([]entity.Sentence, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})
	return ranked
}

// Select picks the summary and key points from scored sentences.
//
// The top TierCount sentences form the summary in document order. The next
// KeyPointCount sentences in rank order become key points; when fewer exist the
// list is padded, starting with the video statement for video sources.
func Select(scored []entity.Sentence, length entity.SummaryLength, video bool, padding Padding) Result {
	ranked := Rank(scored)
	count := TierCount(length, len(ranked))

	chosen := make([]entity.Sentence, count)
	copy(chosen, ranked[:count])
	sort.SliceStable(chosen, func(i, j int) bool { return chosen[i].Index < chosen[j].Index })

	parts := make([]string, 0, len(chosen))
	for _, s := range chosen {
		if p := trimTerminal(s.Text); p != "" {
			parts = append(parts, p)
		}
	}
	summary := ""
	if len(parts) > 0 {
		summary = strings.Join(parts, ". ") + "."
	}

	rest := ranked[count:]
	keyPoints := make([]string, 0, KeyPointCount)
	for i := 0; i < len(rest) && i < KeyPointCount; i++ {
		keyPoints = append(keyPoints, capitalize(rest[i].Text))
	}

	natural := len(keyPoints)
	keyPoints = pad(keyPoints, video, padding)

	return Result{
		Summary:   summary,
		KeyPoints: keyPoints,
		Sentences: count,
		Padded:    len(keyPoints) - natural,
	}
}

func pad(keyPoints []string, video bool, padding Padding) []string {
	if len(keyPoints) >= KeyPointCount {
		return keyPoints
	}
	pool := padding.Generic
	if video && padding.Video != "" {
		pool = append([]string{padding.Video}, padding.Generic...)
	}
	for _, s := range pool {
		if len(keyPoints) >= KeyPointCount {
			break
		}
		keyPoints = append(keyPoints, s)
	}
	return keyPoints
}

func trimTerminal(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || unicode.IsSpace(r)
	})
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Extractive is the term-frequency summarizer with metrics recording.
type Extractive struct {
	padding         Padding
	metricsRecorder SummaryMetricsRecorder
}

// NewExtractive creates an Extractive summarizer with the default padding and Prometheus metrics.
func NewExtractive() *Extractive {
	return &Extractive{
		padding:         DefaultPadding(),
		metricsRecorder: defaultMetrics(),
	}
}

// NewExtractiveWith creates an Extractive summarizer with explicit padding and recorder.
// The padding must pass Validate. A nil recorder disables metrics.
func NewExtractiveWith(padding Padding, recorder SummaryMetricsRecorder) (*Extractive, error) {
	if err := padding.Validate(); err != nil {
		return nil, fmt.Errorf("invalid padding: %w", err)
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Extractive{padding: padding, metricsRecorder: recorder}, nil
}

// Summarize scores and selects sentences. The context is only used for logging.
func (e *Extractive) Summarize(ctx context.Context, sentences []string, length entity.SummaryLength, video bool) (string, []string, error) {
	res, err := e.Extract(ctx, sentences, length, video)
	if err != nil {
		return "", nil, err
	}
	return res.Summary, res.KeyPoints, nil
}

// Extract is Summarize with the full selection result.
func (e *Extractive) Extract(ctx context.Context, sentences []string, length entity.SummaryLength, video bool) (Result, error) {
	if len(sentences) == 0 {
		return Result{}, ErrNoSentences
	}
	start := time.Now()

	res := Select(ScoreSentences(sentences), length, video, e.padding)

	e.metricsRecorder.RecordDuration(time.Since(start))
	e.metricsRecorder.RecordLength(text.CountRunes(res.Summary))
	e.metricsRecorder.RecordSentences(res.Sentences)
	if res.Padded > 0 {
		e.metricsRecorder.RecordPadded(res.Padded)
	}

	slog.DebugContext(ctx, "extractive summary selected",
		slog.Int("sentences_total", len(sentences)),
		slog.Int("sentences_selected", res.Sentences),
		slog.Int("key_points_padded", res.Padded),
		slog.String("length", string(length)))

	return res, nil
}
