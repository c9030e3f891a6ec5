package http

import (
	"net/http"

	"briefly/internal/handler/http/respond"
)

const (
	// MaxAuthorizationHeader bounds the Authorization header. JWTs are far smaller.
	MaxAuthorizationHeader = 8192
	// MaxPathLength bounds the request path.
	MaxPathLength = 2048
	// DefaultMaxBodyBytes is the request body cap for the API (1 MiB).
	DefaultMaxBodyBytes int64 = 1 << 20
)

// InputValidation returns middleware that rejects oversized Authorization
// headers and paths, and caps the request body at maxBodyBytes.
//
// A declared Content-Length above the cap is rejected up front. Bodies without
// a length surface the cap as a read error in the handler, which reports it as
// invalid request data.
func InputValidation(maxBodyBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > MaxAuthorizationHeader {
				respond.Error(w, http.StatusBadRequest, "Invalid request data", "authorization header too large")
				return
			}

			if len(r.URL.Path) > MaxPathLength {
				respond.Error(w, http.StatusRequestURITooLong, "Invalid request data", "URI too long")
				return
			}

			if r.ContentLength > maxBodyBytes {
				respond.Error(w, http.StatusBadRequest, "Invalid request data", "request body too large")
				return
			}

			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}

			next.ServeHTTP(w, r)
		})
	}
}
