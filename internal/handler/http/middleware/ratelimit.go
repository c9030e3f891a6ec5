package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"briefly/internal/observability/metrics"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the per-IP token bucket.
type RateLimitConfig struct {
	Enabled bool `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`

	// RequestsPerMinute is the sustained refill rate per client IP.
	RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE"`

	// Burst is the bucket size.
	Burst int `yaml:"burst" env:"RATE_LIMIT_BURST"`

	// IdleTimeout drops buckets of clients not seen for this long.
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"RATE_LIMIT_IDLE_TIMEOUT"`

	// TrustedProxies are IPs or CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string `yaml:"trusted_proxies" env:"RATE_LIMIT_TRUSTED_PROXIES" envSeparator:","`
}

// DefaultRateLimitConfig allows 30 requests per minute with bursts of 10.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 30,
		Burst:             10,
		IdleTimeout:       10 * time.Minute,
	}
}

// Validate checks the limiter settings.
func (c *RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests per minute must be positive, got %d", c.RequestsPerMinute)
	}
	if c.Burst <= 0 {
		return fmt.Errorf("burst must be positive, got %d", c.Burst)
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %v", c.IdleTimeout)
	}
	_, err := NewTrustedProxyConfig(c.TrustedProxies)
	return err
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	idle      time.Duration
	extractor IPExtractor
	now       func() time.Time
}

// NewIPRateLimiter creates a limiter. A nil extractor uses RemoteAddr only.
func NewIPRateLimiter(config RateLimitConfig, extractor IPExtractor) *IPRateLimiter {
	if extractor == nil {
		extractor = &RemoteAddrExtractor{}
	}
	return &IPRateLimiter{
		clients:   make(map[string]*clientLimiter),
		limit:     rate.Limit(float64(config.RequestsPerMinute) / 60),
		burst:     config.Burst,
		idle:      config.IdleTimeout,
		extractor: extractor,
		now:       time.Now,
	}
}

// Allow consumes a token for ip and reports whether the request may proceed.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.reserve(ip) == 0
}

// reserve returns zero when allowed, otherwise how long until a token is available.
func (l *IPRateLimiter) reserve(ip string) time.Duration {
	now := l.now()

	l.mu.Lock()
	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	if c.limiter.AllowN(now, 1) {
		return 0
	}

	r := c.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	if delay <= 0 {
		delay = time.Second
	}
	return delay
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := l.extractor.ExtractIP(r)
		if err != nil {
			slog.Warn("rate limiter could not determine client IP",
				slog.String("remote_addr", r.RemoteAddr),
				slog.Any("error", err))
			ip = r.RemoteAddr
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.burst))

		if wait := l.reserve(ip); wait > 0 {
			metrics.RecordRateLimited()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Too many requests"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Cleanup drops buckets idle for longer than the idle timeout and returns how many were removed.
func (l *IPRateLimiter) Cleanup() int {
	cutoff := l.now().Add(-l.idle)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
			removed++
		}
	}
	return removed
}

// ActiveClients returns the number of tracked client IPs.
func (l *IPRateLimiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (l *IPRateLimiter) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return
		case <-ticker.C:
			removed := l.Cleanup()
			slog.Debug("rate limit cleanup completed",
				slog.Int("keys_removed", removed),
				slog.Int("active_keys", l.ActiveClients()))
		}
	}
}
