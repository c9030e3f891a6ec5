package summary

import (
	"errors"
	"net/http"

	"briefly/internal/handler/http/respond"
	"briefly/internal/usecase/summarize"
)

// ValidateHandler checks a video reference without fetching its content.
type ValidateHandler struct{ Svc *summarize.Service }

// ServeHTTP validate-video
// @Summary      Validate a video reference
// @Description  Checks URL shape and video id. No transcript is downloaded.
// @Tags         summaries
// @Accept       json
// @Produce      json
// @Param        request body ValidateRequest true "Video reference"
// @Success      200 {object} ValidateResponse
// @Failure      400 {object} ValidateResponse
// @Failure      429 {object} respond.ErrorBody "Too many requests"
// @Router       /api/validate-video [post]
func (h ValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.JSON(w, http.StatusBadRequest, ValidateResponse{
			Message: MsgInvalidRequest,
			Error:   causeDetail(err, summarize.ErrInvalidRequest),
		})
		return
	}

	err := h.Svc.ValidateReference(r.Context(), req.VideoReference)
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, ValidateResponse{Valid: true})
	case errors.Is(err, summarize.ErrInvalidRequest):
		respond.JSON(w, http.StatusBadRequest, ValidateResponse{
			Message: MsgInvalidRequest,
			Error:   validationDetail(err),
		})
	default:
		respond.JSON(w, http.StatusBadRequest, ValidateResponse{
			Message: MsgInvalidReference,
			Error:   causeDetail(err, summarize.ErrContentUnavailable),
		})
	}
}
