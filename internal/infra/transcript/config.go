// Package transcript turns video references into plain text.
//
// YouTubeSource reads caption tracks from the public watch page. Router picks
// between YouTube and a generic page fetcher depending on the reference.
package transcript

import (
	"fmt"
	"net/url"

	"briefly/internal/domain/entity"
)

// Config holds the YouTube transcript source settings.
type Config struct {
	// WatchBaseURL is the scheme and host serving /watch pages.
	// Default: https://www.youtube.com
	WatchBaseURL string `yaml:"watch_base_url" env:"WATCH_BASE_URL"`

	// FallbackLanguage is tried when no track matches the requested language.
	// Default: en
	FallbackLanguage string `yaml:"fallback_language" env:"FALLBACK_LANGUAGE"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		WatchBaseURL:     "https://www.youtube.com",
		FallbackLanguage: string(entity.LanguageEnglish),
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.WatchBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("watch base URL must be an absolute http(s) URL, got %q", c.WatchBaseURL)
	}
	if c.FallbackLanguage == "" {
		return fmt.Errorf("fallback language must not be empty")
	}
	return nil
}
