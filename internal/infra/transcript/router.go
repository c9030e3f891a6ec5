package transcript

import (
	"context"
	"fmt"
)

// Source is what Router dispatches to.
type Source interface {
	Fetch(ctx context.Context, ref string) (string, error)
	Validate(ctx context.Context, ref string) error
}

// Router sends YouTube references to YouTube and everything else to Pages.
// A nil Pages rejects non-YouTube references with ErrUnsupportedReference.
type Router struct {
	YouTube Source
	Pages   Source
}

// NewRouter creates a Router. pages may be nil.
func NewRouter(youtube, pages Source) *Router {
	return &Router{YouTube: youtube, Pages: pages}
}

// Fetch implements the transcript source contract.
func (r *Router) Fetch(ctx context.Context, ref string) (string, error) {
	src, err := r.route(ref)
	if err != nil {
		return "", err
	}
	return src.Fetch(ctx, ref)
}

// Validate implements the transcript source contract.
func (r *Router) Validate(ctx context.Context, ref string) error {
	src, err := r.route(ref)
	if err != nil {
		return err
	}
	return src.Validate(ctx, ref)
}

func (r *Router) route(ref string) (Source, error) {
	if IsYouTubeURL(ref) {
		return r.YouTube, nil
	}
	if r.Pages == nil {
		return nil, fmt.Errorf("%w: only YouTube URLs are supported", ErrUnsupportedReference)
	}
	return r.Pages, nil
}
