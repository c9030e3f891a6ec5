package entity

import (
	"fmt"
	"net/url"

	"briefly/internal/utils/text"
)

// MaxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const MaxURLLength = 2048

// MinRawTextRunes is the minimum raw text length, counted after trimming surrounding whitespace.
const MinRawTextRunes = 50

// ValidateURL checks that rawURL is an absolute http(s) URL with a host.
// The check is syntactic; network-level checks happen where the URL is fetched.
// field names the request field in the returned ValidationError.
func ValidateURL(field, rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: field, Message: "URL is required"}
	}

	// DoS protection: enforce maximum URL length
	if len(rawURL) > MaxURLLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("url must not exceed %d characters", MaxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: field, Message: "URL is malformed"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: field, Message: "URL must use http or https scheme"}
	}

	if parsedURL.Hostname() == "" {
		return &ValidationError{Field: field, Message: "URL must have a valid host"}
	}

	return nil
}

// Validate checks the request shape. It returns a *ValidationError naming the
// first offending field, or nil.
func (r *SummaryRequest) Validate() error {
	if !r.InputType.Valid() {
		return &ValidationError{Field: "inputType", Message: "must be one of video_reference, raw_text"}
	}

	switch r.InputType {
	case InputTypeVideoReference:
		if err := ValidateURL("videoReference", r.VideoReference); err != nil {
			return err
		}
	case InputTypeRawText:
		if r.RawText == "" {
			return &ValidationError{Field: "rawText", Message: "text is required"}
		}
		if text.CountTrimmedRunes(r.RawText) < MinRawTextRunes {
			return &ValidationError{
				Field:   "rawText",
				Message: fmt.Sprintf("text must be at least %d characters", MinRawTextRunes),
			}
		}
	}

	if !r.Length.Valid() {
		return &ValidationError{Field: "length", Message: "must be one of short, medium, long"}
	}
	if !r.Language.Valid() {
		return &ValidationError{Field: "language", Message: "must be one of en, es, fr, de, zh"}
	}
	return nil
}
