package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"briefly/internal/config"
	"briefly/internal/infra/adapter/persistence/memory"
	"briefly/internal/infra/adapter/persistence/postgres"
	"briefly/internal/infra/adapter/persistence/sqlite"
	"briefly/internal/infra/db"
	"briefly/internal/infra/fetcher"
	"briefly/internal/infra/summarizer"
	"briefly/internal/infra/transcript"
	"briefly/internal/infra/worker"
	"briefly/internal/observability/logging"
	"briefly/internal/observability/tracing"
	"briefly/internal/repository"
	"briefly/internal/resilience/circuitbreaker"
	"briefly/internal/usecase/history"
	"briefly/internal/usecase/summarize"

	hhttp "briefly/internal/handler/http"
	"briefly/internal/handler/http/auth"
	"briefly/internal/handler/http/middleware"
	"briefly/internal/handler/http/requestid"
	hsummary "briefly/internal/handler/http/summary"

	_ "briefly/docs" // swagger docs
)

// @title           Briefly API
// @version         1.0
// @description     Extractive summaries of videos and text.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Optional JWT bearer token. Send "Bearer {token}" in the Authorization header.

// dbStatsInterval is how often pool statistics are published.
const dbStatsInterval = 15 * time.Second

// rateLimitCleanupInterval is how often idle rate limiter clients are evicted.
const rateLimitCleanupInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)

	storage, err := initStorage(logger, cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer storage.Close(logger)

	components, err := setupServer(logger, cfg, storage)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	if err := runServer(logger, cfg, storage, components); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger builds the process logger and installs it as the slog default.
func initLogger(cfg logging.Config) *slog.Logger {
	logger := logging.New(cfg)
	slog.SetDefault(logger)
	return logger
}

// Storage is the selected summary repository and, for SQL drivers, its pool.
type Storage struct {
	Driver string
	Repo   repository.SummaryRepository
	DB     *sql.DB
}

// Close releases the SQL pool if one was opened.
func (s *Storage) Close(logger *slog.Logger) {
	if s.DB == nil {
		return
	}
	if err := s.DB.Close(); err != nil {
		logger.Error("failed to close database", slog.Any("error", err))
	}
}

// initStorage opens the configured store and applies migrations for SQL drivers.
func initStorage(logger *slog.Logger, cfg db.Config) (*Storage, error) {
	if cfg.Driver == db.DriverMemory {
		logger.Warn("using in-memory summary storage; history is lost on restart")
		return &Storage{Driver: cfg.Driver, Repo: memory.NewSummaryRepo()}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(ctx, database, cfg.Driver); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	var repo repository.SummaryRepository
	switch cfg.Driver {
	case db.DriverPostgres:
		repo = postgres.NewSummaryRepo(database)
	case db.DriverSQLite:
		repo = sqlite.NewSummaryRepo(database)
	}
	return &Storage{Driver: cfg.Driver, Repo: repo, DB: database}, nil
}

// ServerComponents holds what runServer needs beyond the handler.
type ServerComponents struct {
	Handler     http.Handler
	History     *history.Service
	RateLimiter *middleware.IPRateLimiter
}

// setupServer wires content sources, use cases, routes and middleware.
func setupServer(logger *slog.Logger, cfg config.Config, storage *Storage) (*ServerComponents, error) {
	client := fetcher.NewClient(cfg.ContentFetch)
	youtube := transcript.NewYouTubeSource(client, cfg.YouTube)
	breakers := []*circuitbreaker.CircuitBreaker{youtube.CircuitBreaker()}
	if guarded, ok := storage.Repo.(interface {
		Breaker() *circuitbreaker.CircuitBreaker
	}); ok {
		breakers = append(breakers, guarded.Breaker())
	}

	var pages transcript.Source
	if cfg.ContentFetch.Enabled {
		readability := fetcher.NewReadabilityFetcherWithClient(client)
		pages = readability
		breakers = append(breakers, readability.CircuitBreaker())
		logger.Info("content fetch enabled for non-YouTube references",
			slog.Duration("timeout", cfg.ContentFetch.Timeout),
			slog.Int64("max_body_size", cfg.ContentFetch.MaxBodySize))
	} else {
		logger.Info("content fetch disabled; only YouTube references are accepted")
	}

	summarySvc := summarize.NewService(
		transcript.NewRouter(youtube, pages),
		summarizer.NewExtractive(),
		storage.Repo,
	)
	historySvc := history.NewService(storage.Repo)

	authn := auth.NewAuthenticator(cfg.Auth.JWTSecret)
	if authn.Enabled() {
		logger.Info("bearer authentication enabled; history is stored per user")
	} else {
		logger.Warn("JWT_SECRET not set; all requests are anonymous and history is unavailable")
	}

	// Create appropriate IPExtractor based on configuration
	proxyConfig, err := middleware.NewTrustedProxyConfig(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	var ipExtractor middleware.IPExtractor
	if proxyConfig.Enabled {
		ipExtractor = middleware.NewTrustedProxyExtractor(proxyConfig)
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		ipExtractor = &middleware.RemoteAddrExtractor{}
		logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
	}

	var ipRateLimiter *middleware.IPRateLimiter
	if cfg.RateLimit.Enabled {
		ipRateLimiter = middleware.NewIPRateLimiter(cfg.RateLimit, ipExtractor)
		logger.Info("rate limiting initialized",
			slog.Int("requests_per_minute", cfg.RateLimit.RequestsPerMinute),
			slog.Int("burst", cfg.RateLimit.Burst))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	mux := http.NewServeMux()
	health := &hhttp.HealthHandler{
		Storage:       storage.Repo,
		StorageDriver: storage.Driver,
		DB:            storage.DB,
		Breakers:      breakers,
		Version:       cfg.Server.Version,
	}
	if ipRateLimiter != nil {
		health.RateLimiter = ipRateLimiter
	}
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Storage: storage.Repo})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	hsummary.Register(mux, summarySvc, historySvc, authn, cfg.Server.RequestTimeout)

	logger.Info("CORS configured",
		slog.Any("allowed_origins", cfg.CORS.AllowedOrigins),
		slog.Any("allowed_methods", cfg.CORS.AllowedMethods))

	return &ServerComponents{
		Handler:     applyMiddleware(logger, cfg, mux, ipRateLimiter),
		History:     historySvc,
		RateLimiter: ipRateLimiter,
	}, nil
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: CORS → Request ID → IP Rate Limit → Recovery → Logging → Input Validation → Tracing → Metrics
func applyMiddleware(logger *slog.Logger, cfg config.Config, handler http.Handler, ipRateLimiter *middleware.IPRateLimiter) http.Handler {
	chain := []func(http.Handler) http.Handler{
		middleware.CORS(cfg.CORS),
		requestid.Middleware,
	}
	if ipRateLimiter != nil {
		chain = append(chain, ipRateLimiter.Middleware)
	}
	chain = append(chain,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.InputValidation(hhttp.DefaultMaxBodyBytes),
		tracing.Middleware,
		hhttp.MetricsMiddleware,
	)
	return hhttp.Chain(handler, chain...)
}

// runServer starts the HTTP server and background jobs and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg config.Config, storage *Storage, components *ServerComponents) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if components.RateLimiter != nil {
		g.Go(func() error {
			components.RateLimiter.RunCleanup(gctx, rateLimitCleanupInterval)
			return nil
		})
	}

	if storage.DB != nil {
		g.Go(func() error {
			db.CollectStats(gctx, storage.DB, dbStatsInterval)
			return nil
		})
	}

	if cfg.Retention.Enabled() {
		scheduler := worker.NewScheduler(cfg.Retention.Location(), logger)
		job := &worker.PurgeJob{
			Purger:  components.History,
			MaxAge:  cfg.Retention.MaxAge,
			Timeout: 5 * time.Minute,
			Logger:  logger.With(slog.String("job", worker.PurgeJobName)),
			Metrics: worker.NewMetrics(prometheus.DefaultRegisterer),
		}
		if err := scheduler.Add(cfg.Retention.Schedule, job); err != nil {
			return err
		}
		g.Go(func() error { return scheduler.Run(gctx) })
	} else {
		logger.Info("summary retention purge disabled")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout, // Prevent Slowloris attacks
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return gctx
		},
	}

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", cfg.Server.Version),
			slog.String("storage", storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
