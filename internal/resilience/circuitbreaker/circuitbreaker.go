// Package circuitbreaker guards outbound dependencies with sony/gobreaker.
// A tripped breaker rejects calls with ErrOpenState until its timeout elapses.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrOpenState is returned for calls rejected by an open breaker.
var ErrOpenState = gobreaker.ErrOpenState

// Config describes when a breaker trips and how it recovers.
type Config struct {
	Name string
	// MaxRequests is the number of probe calls allowed while half-open.
	MaxRequests uint32
	// Interval resets the closed-state counters. Zero never resets.
	Interval time.Duration
	// Timeout is how long the breaker stays open.
	Timeout time.Duration
	// FailureThreshold is the failure ratio (0..1) that trips the breaker
	// once MinRequests calls have been counted.
	FailureThreshold float64
	MinRequests      uint32
	// IgnoreErrors are outcomes of a healthy dependency, matched with
	// errors.Is. They count as successes.
	IgnoreErrors []error
}

// DefaultConfig returns a general purpose configuration named name.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          time.Minute,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// TranscriptConfig guards YouTube watch page and caption requests.
func TranscriptConfig() Config {
	cfg := DefaultConfig("youtube-transcript")
	cfg.Interval = time.Minute
	return cfg
}

// PageFetchConfig guards readability page fetches. Page hosts vary per
// request, so more half-open probes are allowed.
func PageFetchConfig() Config {
	cfg := DefaultConfig("page-fetch")
	cfg.Interval = time.Minute
	cfg.MaxRequests = 5
	return cfg
}

// CircuitBreaker is a named gobreaker.CircuitBreaker.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New builds a breaker from cfg. Calls failing with context.Canceled or one of
// cfg.IgnoreErrors count as successes.
func New(cfg Config) *CircuitBreaker {
	minRequests, threshold := cfg.MinRequests, cfg.FailureThreshold
	ignored := append([]error{context.Canceled}, cfg.IgnoreErrors...)
	return &CircuitBreaker{
		name: cfg.Name,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        cfg.Name,
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.Requests >= minRequests &&
					float64(c.TotalFailures)/float64(c.Requests) >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("circuit breaker state changed",
					slog.String("circuit", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
			},
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				for _, target := range ignored {
					if errors.Is(err, target) {
						return true
					}
				}
				return false
			},
		}),
	}
}

// Execute runs fn through the breaker.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// Do is the typed form of Execute.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

func (cb *CircuitBreaker) State() gobreaker.State { return cb.breaker.State() }

func (cb *CircuitBreaker) Name() string { return cb.name }

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
