package transcript

import "errors"

var (
	// ErrNotYouTube indicates the reference is not a YouTube URL.
	ErrNotYouTube = errors.New("not a YouTube URL")

	// ErrInvalidVideoID indicates no valid video id could be read from the URL.
	ErrInvalidVideoID = errors.New("could not extract video ID from URL")

	// ErrPlayerResponseNotFound indicates the watch page did not embed player data.
	ErrPlayerResponseNotFound = errors.New("player response not found in watch page")

	// ErrVideoUnavailable indicates the video is private, removed or region locked.
	ErrVideoUnavailable = errors.New("video unavailable")

	// ErrNoCaptions indicates the video has no caption tracks.
	ErrNoCaptions = errors.New("video has no available transcripts")

	// ErrEmptyTranscript indicates the caption track decoded to no text.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrUnsupportedReference indicates no configured source accepts the reference.
	ErrUnsupportedReference = errors.New("unsupported video reference")
)

// videoErrors describe a single video rather than the health of YouTube.
var videoErrors = []error{
	ErrPlayerResponseNotFound,
	ErrVideoUnavailable,
	ErrNoCaptions,
	ErrEmptyTranscript,
}
