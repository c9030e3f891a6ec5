// Package respond writes JSON responses and maps errors to safe client messages.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSON writes v with status code. A nil v writes headers only.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already out
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes an ErrorBody. detail may be empty.
func Error(w http.ResponseWriter, code int, message, detail string) {
	JSON(w, code, ErrorBody{Message: message, Error: detail})
}

// AppError pairs an internal error with what the client is allowed to see.
type AppError struct {
	UserMsg string
	// Detail is returned as "error" and must already be safe to show.
	Detail string
	// Err is logged, never returned.
	Err  error
	Code int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, userMsg, detail string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Detail: detail, Err: err}
}

// safeFragments mark plain errors whose text may be shown to users.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"must not",
	"cannot be",
	"too long",
	"too short",
}

// SafeError writes err without leaking internals.
//
// An *AppError answers with its own code, message and detail; its wrapped error
// is logged after sanitization. Any other error answers with code: 4xx errors
// whose text looks like a validation message are passed through, everything
// else becomes a generic message and is logged.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil && appErr.Code >= 500 {
			slog.Default().Error("application error",
				slog.String("status", http.StatusText(appErr.Code)),
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		Error(w, appErr.Code, appErr.UserMsg, appErr.Detail)
		return
	}

	msg := err.Error()
	if code < 500 && isSafe(msg) {
		Error(w, code, http.StatusText(code), SanitizeError(err))
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	if code >= 500 {
		Error(w, code, "Internal server error", "")
		return
	}
	Error(w, code, http.StatusText(code), "")
}

func isSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, safe := range safeFragments {
		if strings.Contains(lower, safe) {
			return true
		}
	}
	return false
}
