package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"briefly/internal/infra/fetcher"
	"briefly/internal/resilience/circuitbreaker"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Test Article</title></head>
<body>
	<nav><a href="/">Home</a></nav>
	<article>
		<h1>Test Article Title</h1>
		<p>This is the first paragraph of the article content, long enough to be considered readable prose by the extractor.</p>
		<p>This is the second paragraph with more important information about the subject that the reader came for.</p>
		<p>This is the third paragraph to ensure we have enough content for the readability scoring to pick the article.</p>
	</article>
</body>
</html>`

func localConfig() fetcher.ContentFetchConfig {
	cfg := fetcher.DefaultConfig()
	cfg.DenyPrivateIPs = false // httptest servers listen on loopback
	return cfg
}

func TestReadabilityFetcher_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "BrieflyBot/1.0" {
			t.Errorf("expected User-Agent=BrieflyBot/1.0, got %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	f := fetcher.NewReadabilityFetcher(localConfig())

	content, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(content, "first paragraph") {
		t.Errorf("expected content to contain 'first paragraph', got: %q", content)
	}
	if strings.Contains(content, "<p>") {
		t.Errorf("expected plain text, got markup: %q", content)
	}
}

func TestReadabilityFetcher_Fetch_InvalidURL(t *testing.T) {
	f := fetcher.NewReadabilityFetcher(fetcher.DefaultConfig())

	for _, u := range []string{"not-a-valid-url", "ftp://example.com/file", "javascript:alert(1)"} {
		t.Run(u, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), u)
			if !errors.Is(err, fetcher.ErrInvalidURL) {
				t.Errorf("expected ErrInvalidURL, got %v", err)
			}
		})
	}
}

func TestReadabilityFetcher_Fetch_PrivateIP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("private address must not be contacted")
	}))
	defer server.Close()

	f := fetcher.NewReadabilityFetcher(fetcher.DefaultConfig())

	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, fetcher.ErrPrivateIP) {
		t.Errorf("expected ErrPrivateIP, got %v", err)
	}
}

func TestReadabilityFetcher_Fetch_NoReadableContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head></head><body></body></html>`))
	}))
	defer server.Close()

	f := fetcher.NewReadabilityFetcher(localConfig())

	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, fetcher.ErrReadabilityFailed) {
		t.Errorf("expected ErrReadabilityFailed, got %v", err)
	}
}

func TestReadabilityFetcher_Fetch_HTTPError(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
			}))
			defer server.Close()

			f := fetcher.NewReadabilityFetcher(localConfig())

			_, err := f.Fetch(context.Background(), server.URL)
			if !errors.Is(err, fetcher.ErrUnexpectedStatus) {
				t.Errorf("expected ErrUnexpectedStatus, got %v", err)
			}
			var statusErr *fetcher.StatusError
			if !errors.As(err, &statusErr) || statusErr.Code != code {
				t.Errorf("expected StatusError with code %d, got %v", code, err)
			}
		})
	}
}

func TestReadabilityFetcher_Fetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	cfg := localConfig()
	cfg.Timeout = 50 * time.Millisecond
	f := fetcher.NewReadabilityFetcher(cfg)

	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, fetcher.ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestReadabilityFetcher_Fetch_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	defer server.Close()

	cfg := localConfig()
	cfg.MaxBodySize = 1024
	f := fetcher.NewReadabilityFetcher(cfg)

	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, fetcher.ErrBodyTooLarge) {
		t.Errorf("expected ErrBodyTooLarge, got %v", err)
	}
}

func TestReadabilityFetcher_Fetch_TooManyRedirects(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+"/loop", http.StatusFound)
	}))
	defer server.Close()

	cfg := localConfig()
	cfg.MaxRedirects = 2
	f := fetcher.NewReadabilityFetcher(cfg)

	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, fetcher.ErrTooManyRedirects) {
		t.Errorf("expected ErrTooManyRedirects, got %v", err)
	}
}

func TestReadabilityFetcher_Fetch_FollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articleHTML))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := fetcher.NewReadabilityFetcher(localConfig())

	content, err := f.Fetch(context.Background(), server.URL+"/old")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(content, "second paragraph") {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestReadabilityFetcher_Fetch_CircuitBreakerOpens(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := fetcher.NewReadabilityFetcher(localConfig())

	for i := 0; i < 5; i++ {
		if _, err := f.Fetch(context.Background(), server.URL); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, circuitbreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState after repeated failures, got %v", err)
	}
	if calls != 5 {
		t.Errorf("expected 5 upstream calls, got %d", calls)
	}
}

func TestReadabilityFetcher_Validate(t *testing.T) {
	f := fetcher.NewReadabilityFetcher(fetcher.DefaultConfig())

	if err := f.Validate(context.Background(), "http://93.184.216.34/article"); err != nil {
		t.Errorf("expected public IP URL to validate, got %v", err)
	}
	if err := f.Validate(context.Background(), "http://127.0.0.1/article"); !errors.Is(err, fetcher.ErrPrivateIP) {
		t.Errorf("expected ErrPrivateIP, got %v", err)
	}
	if err := f.Validate(context.Background(), "mailto:someone@example.com"); !errors.Is(err, fetcher.ErrInvalidURL) {
		t.Errorf("expected ErrInvalidURL, got %v", err)
	}
}
