// Package responsewriter records the status and size of a response for the
// logging, metrics and tracing middlewares.
package responsewriter

import "net/http"

// Recorder wraps an http.ResponseWriter and remembers what was written through it.
type Recorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

// Wrap returns a Recorder around w. If w is already a Recorder it is returned as is,
// so stacked middlewares share one set of counters.
func Wrap(w http.ResponseWriter) *Recorder {
	if rec, ok := w.(*Recorder); ok {
		return rec
	}
	return &Recorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader forwards the first status code and ignores the rest.
func (r *Recorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

// Write sends an implicit 200 when no status was written yet.
func (r *Recorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Flush implements http.Flusher when the underlying writer does.
func (r *Recorder) Flush() {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Status returns the status sent, or 200 if nothing was written.
func (r *Recorder) Status() int { return r.status }

// Bytes returns the number of body bytes written.
func (r *Recorder) Bytes() int { return r.bytes }

// Written reports whether the header has been sent.
func (r *Recorder) Written() bool { return r.wroteHeader }

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *Recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
