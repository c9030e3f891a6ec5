package fetcher

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL covers unparseable URLs and schemes other than http(s).
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")
	// ErrPrivateIP is returned when a target resolves to loopback, private or
	// link-local space and DenyPrivateIPs is set.
	ErrPrivateIP         = errors.New("private IP access denied (SSRF prevention)")
	ErrTooManyRedirects  = errors.New("too many redirects")
	ErrBodyTooLarge      = errors.New("response body too large")
	ErrTimeout           = errors.New("request timeout")
	ErrUnexpectedStatus  = errors.New("unexpected HTTP status")
	ErrReadabilityFailed = errors.New("content extraction failed")
)

// StatusError carries the status of a non-200 response. It matches
// ErrUnexpectedStatus with errors.Is.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnexpectedStatus, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }
