package transcript

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var youtubeHosts = map[string]bool{
	"youtube.com":              true,
	"www.youtube.com":          true,
	"m.youtube.com":            true,
	"music.youtube.com":        true,
	"youtube-nocookie.com":     true,
	"www.youtube-nocookie.com": true,
}

// IsYouTubeURL reports whether ref points at a YouTube host.
func IsYouTubeURL(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return youtubeHosts[host] || host == "youtu.be" || host == "www.youtu.be"
}

// ExtractVideoID returns the 11 character video id from the supported URL forms:
//
//	https://www.youtube.com/watch?v=<id>
//	https://youtu.be/<id>
//	https://www.youtube.com/shorts/<id>
//	https://www.youtube.com/embed/<id>
//	https://www.youtube.com/live/<id>
func ExtractVideoID(ref string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotYouTube, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q", ErrNotYouTube, u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	var id string
	switch {
	case host == "youtu.be" || host == "www.youtu.be":
		id = firstSegment(u.Path)
	case youtubeHosts[host]:
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		switch {
		case segments[0] == "watch":
			id = u.Query().Get("v")
		case len(segments) >= 2 && (segments[0] == "shorts" || segments[0] == "embed" || segments[0] == "live" || segments[0] == "v"):
			id = segments[1]
		}
	default:
		return "", fmt.Errorf("%w: host %q", ErrNotYouTube, host)
	}

	if !videoIDPattern.MatchString(id) {
		return "", ErrInvalidVideoID
	}
	return id, nil
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
