// Package config assembles the service configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file named by BRIEFLY_CONFIG, then environment variables. The result is
// validated once at startup.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"briefly/internal/handler/http/auth"
	"briefly/internal/handler/http/middleware"
	"briefly/internal/infra/db"
	"briefly/internal/infra/fetcher"
	"briefly/internal/infra/transcript"
	"briefly/internal/observability/logging"
	pkgconfig "briefly/pkg/config"
)

// PathEnv names the environment variable holding the YAML config path.
const PathEnv = "BRIEFLY_CONFIG"

// Config is the complete service configuration.
type Config struct {
	Server       ServerConfig               `yaml:"server"`
	Log          logging.Config             `yaml:"log"`
	Storage      db.Config                  `yaml:"storage"`
	ContentFetch fetcher.ContentFetchConfig `yaml:"content_fetch" envPrefix:"CONTENT_FETCH_"`
	YouTube      transcript.Config          `yaml:"youtube" envPrefix:"YOUTUBE_"`
	CORS         middleware.CORSConfig      `yaml:"cors"`
	RateLimit    middleware.RateLimitConfig `yaml:"rate_limit"`
	Auth         AuthConfig                 `yaml:"auth"`
	Retention    RetentionConfig            `yaml:"retention"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr              string        `yaml:"addr" env:"HTTP_ADDR"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HTTP_READ_HEADER_TIMEOUT"`
	ReadTimeout       time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT"`

	// RequestTimeout bounds routes that never wait on a content source.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT"`

	// Version is reported by /health.
	Version string `yaml:"version" env:"VERSION"`
}

// AuthConfig holds bearer token settings. An empty secret disables authentication.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL"`
}

// RetentionConfig controls the purge of stored summaries.
type RetentionConfig struct {
	// MaxAge is how long records are kept. Zero disables the purge job.
	MaxAge   time.Duration `yaml:"max_age" env:"SUMMARY_RETENTION"`
	Schedule string        `yaml:"schedule" env:"SUMMARY_PURGE_SCHEDULE"`
	Timezone string        `yaml:"timezone" env:"SUMMARY_PURGE_TIMEZONE"`
}

// Enabled reports whether the purge job should run.
func (r RetentionConfig) Enabled() bool {
	return r.MaxAge > 0
}

// Location resolves Timezone, falling back to UTC.
func (r RetentionConfig) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
			RequestTimeout:    15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			Version:           "dev",
		},
		Log:          logging.Config{Level: "info", Format: "json"},
		Storage:      db.DefaultConfig(),
		ContentFetch: fetcher.DefaultConfig(),
		YouTube:      transcript.DefaultConfig(),
		CORS:         middleware.DefaultCORSConfig(),
		RateLimit:    middleware.DefaultRateLimitConfig(),
		Auth:         AuthConfig{TokenTTL: auth.DefaultTokenTTL},
		Retention: RetentionConfig{
			MaxAge:   30 * 24 * time.Hour,
			Schedule: "30 3 * * *",
			Timezone: "UTC",
		},
	}
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return load(os.Getenv(PathEnv), nil)
}

// load applies the YAML file at path (if any) and then the environment.
// A nil environ means the process environment.
func load(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(section string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", section, err))
		}
	}

	add("server", c.Server.Validate())
	add("storage", c.Storage.Validate())
	add("content_fetch", c.ContentFetch.Validate())
	add("youtube", c.YouTube.Validate())
	add("rate_limit", c.RateLimit.Validate())
	add("auth", c.Auth.Validate())
	add("retention", c.Retention.Validate())

	return errors.Join(errs...)
}

// Validate checks the server settings.
func (s ServerConfig) Validate() error {
	if s.Addr == "" {
		return errors.New("addr must not be empty")
	}
	for name, d := range map[string]time.Duration{
		"read_header_timeout": s.ReadHeaderTimeout,
		"shutdown_timeout":    s.ShutdownTimeout,
	} {
		if err := pkgconfig.ValidatePositiveDuration(d); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":  s.ReadTimeout,
		"write_timeout": s.WriteTimeout,
		"idle_timeout":  s.IdleTimeout,
		// zero turns the per-route timeout off
		"request_timeout": s.RequestTimeout,
	} {
		if err := pkgconfig.ValidateNonNegativeDuration(d); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Validate checks the secret strength when authentication is enabled.
func (a AuthConfig) Validate() error {
	if err := auth.ValidateSecret(a.JWTSecret); err != nil {
		return err
	}
	if a.JWTSecret != "" {
		if err := pkgconfig.ValidateDurationRange(a.TokenTTL, time.Minute, 30*24*time.Hour); err != nil {
			return fmt.Errorf("token_ttl: %w", err)
		}
	}
	return nil
}

// Validate checks the schedule and timezone when the purge is enabled.
func (r RetentionConfig) Validate() error {
	if err := pkgconfig.ValidateNonNegativeDuration(r.MaxAge); err != nil {
		return fmt.Errorf("max_age: %w", err)
	}
	if !r.Enabled() {
		return nil
	}
	if err := pkgconfig.ValidateCronSchedule(r.Schedule); err != nil {
		return err
	}
	return pkgconfig.ValidateTimezone(r.Timezone)
}
