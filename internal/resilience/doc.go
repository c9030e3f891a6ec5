// Package resilience provides fault tolerance patterns for calls leaving the process.
//
// The circuitbreaker subpackage guards transcript fetches, page fetches and
// database writes. Nothing in this module retries automatically; a tripped
// breaker fails fast and the caller sees the error.
//
//	cb := circuitbreaker.New(circuitbreaker.TranscriptConfig())
//	text, err := circuitbreaker.Do(cb, func() (string, error) {
//	    return fetchCaptions(ctx, url)
//	})
package resilience
