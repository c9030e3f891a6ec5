package entity

import (
	"time"

	"github.com/google/uuid"
)

// InputType tells the pipeline where the content to summarize comes from.
type InputType string

const (
	InputTypeVideoReference InputType = "video_reference"
	InputTypeRawText        InputType = "raw_text"
)

// Valid reports whether t is a known input type.
func (t InputType) Valid() bool {
	return t == InputTypeVideoReference || t == InputTypeRawText
}

// SummaryLength is the requested summary tier.
type SummaryLength string

const (
	SummaryLengthShort  SummaryLength = "short"
	SummaryLengthMedium SummaryLength = "medium"
	SummaryLengthLong   SummaryLength = "long"
)

// Valid reports whether l is a known tier.
func (l SummaryLength) Valid() bool {
	switch l {
	case SummaryLengthShort, SummaryLengthMedium, SummaryLengthLong:
		return true
	}
	return false
}

// Language is the requested output language. Scoring is English-biased regardless of it.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageFrench  Language = "fr"
	LanguageGerman  Language = "de"
	LanguageChinese Language = "zh"
)

// Valid reports whether l is a supported language code.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageSpanish, LanguageFrench, LanguageGerman, LanguageChinese:
		return true
	}
	return false
}

// RawTextSourceLabel is the source label reported for raw text input.
const RawTextSourceLabel = "Text input"

// SummaryRequest is one summarization request as received from a caller.
type SummaryRequest struct {
	InputType      InputType
	VideoReference string
	RawText        string
	Length         SummaryLength
	Language       Language
}

// NormalizedContent is the plain text to summarize together with its source label.
type NormalizedContent struct {
	Text        string
	SourceLabel string
	Kind        InputType
}

// IsVideo reports whether the content was acquired from a video reference.
func (c NormalizedContent) IsVideo() bool {
	return c.Kind == InputTypeVideoReference
}

// Sentence is a candidate sentence with its position in the document and its relevance score.
type Sentence struct {
	Index int
	Text  string
	Score int
}

// SummaryResponse is the result returned to the caller.
// KeyPoints always holds at least three entries.
type SummaryResponse struct {
	Source      string
	Summary     string
	KeyPoints   []string
	GeneratedAt time.Time
}

// SummaryRecord is a completed summary as handed to a persistence sink.
type SummaryRecord struct {
	ID        uuid.UUID
	UserID    string
	InputType InputType
	Source    string
	Summary   string
	KeyPoints []string
	Length    SummaryLength
	Language  Language
	CreatedAt time.Time
}
