// Package middleware provides cross-cutting HTTP middleware: CORS, client IP
// extraction behind trusted proxies and per-IP rate limiting.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor resolves the client address used as the rate limit key.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor trusts only the TCP peer.
type RemoteAddrExtractor struct{}

func (e *RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	addr, err := peerAddr(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

// TrustedProxyConfig lists the peers allowed to set X-Forwarded-For and X-Real-IP.
type TrustedProxyConfig struct {
	Enabled      bool
	AllowedCIDRs []netip.Prefix
}

// NewTrustedProxyConfig parses entries given as a bare IP or a CIDR. Blank
// entries are skipped; no entries leaves the config disabled.
func NewTrustedProxyConfig(proxies []string) (TrustedProxyConfig, error) {
	var cfg TrustedProxyConfig
	for _, raw := range proxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		prefix, err := parsePrefix(raw)
		if err != nil {
			return TrustedProxyConfig{}, err
		}
		cfg.AllowedCIDRs = append(cfg.AllowedCIDRs, prefix)
	}
	cfg.Enabled = len(cfg.AllowedCIDRs) > 0
	return cfg, nil
}

func parsePrefix(s string) (netip.Prefix, error) {
	if prefix, err := netip.ParsePrefix(s); err == nil {
		return prefix.Masked(), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("trusted proxy %q is neither an IP nor a CIDR", s)
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// IsTrusted reports whether the peer in remoteAddr is a configured proxy.
func (c *TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	addr, err := peerAddr(remoteAddr)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// TrustedProxyExtractor honors forwarding headers from trusted peers only.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
}

func NewTrustedProxyExtractor(config TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{config: config}
}

// ExtractIP prefers the left-most X-Forwarded-For entry, then X-Real-IP, then
// the peer itself. Unparseable header values fall through to the next source.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	xff := r.Header.Get("X-Forwarded-For")
	if !e.config.Enabled || !e.config.IsTrusted(r.RemoteAddr) {
		if e.config.Enabled && xff != "" {
			slog.Warn("ignoring X-Forwarded-For from untrusted peer",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return (&RemoteAddrExtractor{}).ExtractIP(r)
	}

	first, _, _ := strings.Cut(xff, ",")
	for _, candidate := range []string{first, r.Header.Get("X-Real-IP")} {
		if addr, err := netip.ParseAddr(strings.TrimSpace(candidate)); err == nil {
			return addr.Unmap().String(), nil
		}
	}
	return (&RemoteAddrExtractor{}).ExtractIP(r)
}

// peerAddr accepts "host:port" or a bare address.
func peerAddr(s string) (netip.Addr, error) {
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap(), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("invalid remote address %q", s)
	}
	return addr.Unmap(), nil
}
