package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(rpm, burst int) *IPRateLimiter {
	cfg := DefaultRateLimitConfig()
	cfg.RequestsPerMinute = rpm
	cfg.Burst = burst
	return NewIPRateLimiter(cfg, nil)
}

func TestRateLimitConfig_Validate(t *testing.T) {
	cfg := DefaultRateLimitConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Burst = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.TrustedProxies = []string{"nope"}
	assert.Error(t, bad.Validate())

	disabled := RateLimitConfig{}
	assert.NoError(t, disabled.Validate())
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	limiter := newTestLimiter(60, 2)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/summarize", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, do("192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusOK, do("192.0.2.1:1001").Code)

	rr := do("192.0.2.1:1002")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Too many requests", body["message"])

	// other clients have their own bucket
	assert.Equal(t, http.StatusOK, do("192.0.2.2:1000").Code)
}

func TestIPRateLimiter_Refill(t *testing.T) {
	limiter := newTestLimiter(60, 1)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("a"))
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	limiter := newTestLimiter(60, 5)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("old")
	now = now.Add(9 * time.Minute)
	limiter.Allow("fresh")
	now = now.Add(2 * time.Minute)

	assert.Equal(t, 1, limiter.Cleanup())
	assert.Equal(t, 1, limiter.ActiveClients())
}

func TestIPRateLimiter_RunCleanupStops(t *testing.T) {
	limiter := newTestLimiter(60, 5)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		limiter.RunCleanup(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunCleanup did not stop after cancel")
	}
}
