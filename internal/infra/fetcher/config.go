package fetcher

import (
	"errors"
	"fmt"
	"time"

	pkgconfig "briefly/pkg/config"
)

const (
	minBodySize      = 1 << 10
	maxBodySize      = 100 << 20
	maxRedirectLimit = 10
)

// ContentFetchConfig governs every outbound request, whether it reads a page
// with readability or a YouTube watch page and caption track.
type ContentFetchConfig struct {
	// Enabled allows non-YouTube page references. The YouTube source uses the
	// client regardless.
	Enabled bool `yaml:"enabled" env:"ENABLED"`

	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`

	// MaxBodySize caps bytes read from a response, whatever Content-Length says.
	MaxBodySize int64 `yaml:"max_body_size" env:"MAX_BODY_SIZE"`

	// MaxRedirects bounds the redirect chain. Each hop is re-checked for SSRF.
	MaxRedirects int `yaml:"max_redirects" env:"MAX_REDIRECTS"`

	// DenyPrivateIPs rejects loopback, private and link-local targets.
	DenyPrivateIPs bool `yaml:"deny_private_ips" env:"DENY_PRIVATE_IPS"`

	UserAgent string `yaml:"user_agent" env:"USER_AGENT"`
}

func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Enabled:        true,
		Timeout:        10 * time.Second,
		MaxBodySize:    10 << 20,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "BrieflyBot/1.0",
	}
}

// Validate reports every invalid field at once.
func (c *ContentFetchConfig) Validate() error {
	var errs []error
	if err := pkgconfig.ValidatePositiveDuration(c.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("timeout: %w", err))
	}
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		errs = append(errs, fmt.Errorf("max_body_size: %d outside [%d, %d]", c.MaxBodySize, minBodySize, maxBodySize))
	}
	if err := pkgconfig.ValidateIntRange(c.MaxRedirects, 0, maxRedirectLimit); err != nil {
		errs = append(errs, fmt.Errorf("max_redirects: %w", err))
	}
	if c.UserAgent == "" {
		errs = append(errs, errors.New("user_agent: must not be empty"))
	}
	return errors.Join(errs...)
}
