package summary

import (
	"log/slog"
	"net/http"

	"briefly/internal/handler/http/auth"
	"briefly/internal/handler/http/respond"
	"briefly/internal/observability/logging"
	"briefly/internal/usecase/summarize"
)

// SummarizeHandler runs the summarization pipeline for one request.
type SummarizeHandler struct{ Svc *summarize.Service }

// ServeHTTP summarize
// @Summary      Summarize a video or a block of text
// @Description  Returns an extractive summary plus at least three key points.
// @Description  Authenticated callers get the result stored in their history.
// @Tags         summaries
// @Accept       json
// @Produce      json
// @Param        request body SummarizeRequest true "Content to summarize"
// @Success      200 {object} SummarizeResponse
// @Failure      400 {object} respond.ErrorBody "Invalid request data, or content could not be acquired"
// @Failure      401 {object} respond.ErrorBody "Bearer token present but invalid"
// @Failure      422 {object} respond.ErrorBody "Not enough content to summarize"
// @Failure      429 {object} respond.ErrorBody "Too many requests"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      500 {object} respond.ErrorBody "Failed to generate summary"
// @Router       /api/summarize [post]
func (h SummarizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	var req SummarizeRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, toAppError(err))
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	resp, err := h.Svc.Summarize(r.Context(), req.toEntity(), userID)
	if err != nil {
		appErr := toAppError(err)
		if appErr.Code < http.StatusInternalServerError {
			logger.Info("summarize rejected",
				slog.Int("status", appErr.Code),
				slog.String("input_type", req.InputType),
				slog.String("error", respond.SanitizeError(err)))
		}
		respond.SafeError(w, appErr.Code, appErr)
		return
	}

	respond.JSON(w, http.StatusOK, toSummarizeResponse(resp))
}
