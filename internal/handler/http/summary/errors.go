package summary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"briefly/internal/domain/entity"
	"briefly/internal/handler/http/respond"
	"briefly/internal/usecase/history"
	"briefly/internal/usecase/summarize"
)

// User-facing messages.
const (
	MsgInvalidRequest      = "Invalid request data"
	MsgContentUnavailable  = "Failed to extract content from video"
	MsgInsufficientContent = "Not enough content to summarize"
	MsgProcessingFailure   = "Failed to generate summary"
	MsgInvalidReference    = "Invalid video reference"
	MsgHistoryUnavailable  = "Summary history is not available"
	MsgHistoryFailure      = "Failed to load summaries"
)

// toAppError maps a pipeline error onto its HTTP status, message and detail.
func toAppError(err error) *respond.AppError {
	switch {
	case errors.Is(err, summarize.ErrInvalidRequest):
		return respond.NewAppError(http.StatusBadRequest, MsgInvalidRequest, validationDetail(err), err)
	case errors.Is(err, summarize.ErrContentUnavailable):
		return respond.NewAppError(http.StatusBadRequest, MsgContentUnavailable, causeDetail(err, summarize.ErrContentUnavailable), err)
	case errors.Is(err, summarize.ErrInsufficientContent):
		return respond.NewAppError(http.StatusUnprocessableEntity, MsgInsufficientContent, "", err)
	default:
		return respond.NewAppError(http.StatusInternalServerError, MsgProcessingFailure, "", err)
	}
}

func validationDetail(err error) string {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return causeDetail(err, summarize.ErrInvalidRequest)
}

// causeDetail returns the sanitized message of the error wrapped next to sentinel.
func causeDetail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == sentinel.Error() {
		return ""
	}
	return respond.SanitizeError(errors.New(msg))
}

func historyAppError(err error) *respond.AppError {
	var ve *entity.ValidationError
	switch {
	case errors.Is(err, history.ErrStorageDisabled):
		return respond.NewAppError(http.StatusServiceUnavailable, MsgHistoryUnavailable, "", nil)
	case errors.As(err, &ve):
		return respond.NewAppError(http.StatusBadRequest, MsgInvalidRequest, ve.Error(), err)
	default:
		return respond.NewAppError(http.StatusInternalServerError, MsgHistoryFailure, "", err)
	}
}

// decodeJSON reads one JSON object from the request body. Every failure is
// reported as invalid request data.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			err = fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		case errors.Is(err, io.EOF):
			err = errors.New("request body is required")
		default:
			err = fmt.Errorf("malformed JSON: %w", err)
		}
		return fmt.Errorf("%w: %w", summarize.ErrInvalidRequest, err)
	}
	return nil
}
