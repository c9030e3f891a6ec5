// Package main summarizes a video reference or a text file from the command line.
// Usage: briefly-summarize [--video URL | --file PATH] [--length short|medium|long] [--lang en] [--output text|json]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"briefly/internal/config"
	"briefly/internal/domain/entity"
	"briefly/internal/infra/fetcher"
	"briefly/internal/infra/summarizer"
	"briefly/internal/infra/transcript"
	"briefly/internal/observability/logging"
	"briefly/internal/usecase/summarize"
)

// maxInputBytes caps text read from a file or stdin.
const maxInputBytes = 1 << 20

// Output is the JSON output format.
type Output struct {
	Source      string   `json:"source"`
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	GeneratedAt string   `json:"generated_at"`
}

func main() {
	var (
		video        string
		file         string
		length       string
		language     string
		outputFormat string
	)
	flag.StringVar(&video, "video", "", "Video or page URL to summarize")
	flag.StringVar(&file, "file", "", "Text file to summarize (default stdin)")
	flag.StringVar(&length, "length", "medium", "Summary length: short, medium or long")
	flag.StringVar(&language, "lang", "en", "Language: en, es, fr, de or zh")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	if video != "" && file != "" {
		usage("--video and --file are mutually exclusive")
	}
	if outputFormat != "text" && outputFormat != "json" {
		usage(fmt.Sprintf("invalid output format '%s'", outputFormat))
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// Logs go to stderr so stdout carries only the summary.
	slog.SetDefault(logging.NewWithWriter(cfg.Log, os.Stderr))

	req := entity.SummaryRequest{
		Length:   entity.SummaryLength(length),
		Language: entity.Language(language),
	}
	if video != "" {
		req.InputType = entity.InputTypeVideoReference
		req.VideoReference = video
	} else {
		text, err := readInput(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read input: %v\n", err)
			os.Exit(1)
		}
		req.InputType = entity.InputTypeRawText
		req.RawText = text
	}

	client := fetcher.NewClient(cfg.ContentFetch)
	var pages transcript.Source
	if cfg.ContentFetch.Enabled {
		pages = fetcher.NewReadabilityFetcherWithClient(client)
	}
	svc := summarize.NewService(
		transcript.NewRouter(transcript.NewYouTubeSource(client, cfg.YouTube), pages),
		summarizer.NewExtractive(),
		nil,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resp, err := svc.Summarize(ctx, req, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(Output{
			Source:      resp.Source,
			Summary:     resp.Summary,
			KeyPoints:   resp.KeyPoints,
			GeneratedAt: resp.GeneratedAt.UTC().Format(time.RFC3339),
		})
		return
	}

	fmt.Printf("Source: %s\n\n%s\n\nKey points:\n", resp.Source, resp.Summary)
	for _, kp := range resp.KeyPoints {
		fmt.Printf("  - %s\n", kp)
	}
}

func usage(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n\n", msg)
	fmt.Fprintln(os.Stderr, "Usage: briefly-summarize [--video URL | --file PATH] [--length short|medium|long] [--lang en] [--output text|json]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  briefly-summarize --video https://youtu.be/dQw4w9WgXcQ")
	fmt.Fprintln(os.Stderr, "  briefly-summarize --file notes.txt --length short")
	fmt.Fprintln(os.Stderr, "  cat notes.txt | briefly-summarize --output json")
	os.Exit(2)
}

func readInput(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	b, err := io.ReadAll(io.LimitReader(r, maxInputBytes))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// exitCode maps pipeline failures to distinct exit statuses.
func exitCode(err error) int {
	switch {
	case errors.Is(err, summarize.ErrInvalidRequest):
		return 2
	case errors.Is(err, summarize.ErrContentUnavailable):
		return 3
	case errors.Is(err, summarize.ErrInsufficientContent):
		return 4
	default:
		return 1
	}
}
