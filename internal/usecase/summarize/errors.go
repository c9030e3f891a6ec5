// Package summarize provides the summarization use case: it validates a request,
// acquires the content, segments and ranks it, and composes the response.
package summarize

import "errors"

// Sentinel errors for the summarization pipeline. Every error returned by
// Service wraps exactly one of them.
var (
	// ErrInvalidRequest indicates malformed or inconsistent input.
	// The wrapped *entity.ValidationError names the offending field.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrContentUnavailable indicates the referenced content could not be acquired,
	// either because the source failed or because it returned no text.
	ErrContentUnavailable = errors.New("content unavailable")

	// ErrInsufficientContent indicates the text produced no usable sentence.
	ErrInsufficientContent = errors.New("insufficient content")

	// ErrProcessingFailure indicates an unexpected failure while scoring, selecting or composing.
	ErrProcessingFailure = errors.New("processing failure")
)
