// Package main issues bearer tokens for the summary history API.
// Usage: briefly-token --subject USER [--ttl 24h]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"briefly/internal/config"
	"briefly/internal/handler/http/auth"
)

func main() {
	var (
		subject string
		ttl     time.Duration
	)
	flag.StringVar(&subject, "subject", "", "User key the token identifies (required)")
	flag.DurationVar(&ttl, "ttl", 0, "Token lifetime (default JWT_TOKEN_TTL)")
	flag.Parse()

	if subject == "" {
		fmt.Fprintln(os.Stderr, "Error: --subject is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: briefly-token --subject USER [--ttl 24h]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if ttl == 0 {
		ttl = cfg.Auth.TokenTTL
	}

	token, err := auth.NewAuthenticator(cfg.Auth.JWTSecret).IssueToken(subject, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
