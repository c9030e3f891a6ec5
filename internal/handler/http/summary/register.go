package summary

import (
	"net/http"
	"time"

	httph "briefly/internal/handler/http"
	"briefly/internal/handler/http/auth"
	"briefly/internal/usecase/history"
	"briefly/internal/usecase/summarize"
)

// Register registers the summary endpoints with the given mux.
// Summarize accepts anonymous callers; history requires a bearer token.
// Routes that never wait on a content source are bounded by timeout.
func Register(mux *http.ServeMux, svc *summarize.Service, hist *history.Service, authn *auth.Authenticator, timeout time.Duration) {
	mux.Handle("POST /api/summarize", authn.Optional(SummarizeHandler{svc}))
	mux.Handle("POST /api/validate-video", httph.Timeout(timeout)(ValidateHandler{svc}))
	mux.Handle("GET /api/summaries", httph.Timeout(timeout)(authn.Optional(auth.Require(ListHandler{hist}))))
}
