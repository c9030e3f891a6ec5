package summary

import (
	"net/http"
	"strconv"

	"briefly/internal/domain/entity"
	"briefly/internal/handler/http/auth"
	"briefly/internal/handler/http/respond"
	"briefly/internal/usecase/history"
)

// ListHandler returns the caller's stored summaries, newest first.
type ListHandler struct{ Svc *history.Service }

// ServeHTTP summary history
// @Summary      List stored summaries
// @Description  Returns the authenticated caller's summaries, newest first.
// @Tags         summaries
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "Maximum number of summaries (1-100, default 20)"
// @Success      200 {object} ListResponse
// @Failure      400 {object} respond.ErrorBody "Invalid limit"
// @Failure      401 {object} respond.ErrorBody "Authentication required"
// @Failure      503 {object} respond.ErrorBody "Persistence disabled"
// @Router       /api/summaries [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserFromContext(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respond.SafeError(w, http.StatusBadRequest, historyAppError(
				&entity.ValidationError{Field: "limit", Message: "must be a positive integer"}))
			return
		}
		limit = n
	}

	records, err := h.Svc.List(r.Context(), userID, limit)
	if err != nil {
		appErr := historyAppError(err)
		respond.SafeError(w, appErr.Code, appErr)
		return
	}

	out := ListResponse{Summaries: make([]RecordDTO, 0, len(records))}
	for _, rec := range records {
		out.Summaries = append(out.Summaries, toRecordDTO(rec))
	}
	out.Count = len(out.Summaries)
	respond.JSON(w, http.StatusOK, out)
}
