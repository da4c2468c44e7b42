// Command probe resolves one video URL and prints the classified formats as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iconidentify/mediagrab/internal/config"
	"github.com/iconidentify/mediagrab/internal/domain"
	"github.com/iconidentify/mediagrab/internal/extractor"
	"github.com/iconidentify/mediagrab/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	strategy := flag.String("strategy", "", "Override extractor strategy (exec|library)")
	details := flag.Bool("details", false, "Print yt-dlp stderr on failure")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mediagrab-probe %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: mediagrab-probe [flags] <video-url>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *strategy != "" {
		cfg.Extractor.Strategy = *strategy
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "invalid strategy: %v\n", err)
			os.Exit(1)
		}
	}

	level, _ := cfg.Log.SlogLevel()

	// Logs go to stderr so stdout stays pure JSON
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Extractor.AutoInstall {
		if err := extractor.Install(ctx, logger); err != nil {
			logger.Error("failed to install yt-dlp", "error", err)
			os.Exit(1)
		}
	}

	ext, err := extractor.New(cfg.Extractor, logger)
	if err != nil {
		logger.Error("failed to create extractor", "error", err)
		os.Exit(1)
	}

	result, err := service.NewFormatService(ext, cfg.Extractor, logger).Lookup(ctx, flag.Arg(0))
	if err != nil {
		var extErr *domain.ExtractionError
		if *details && errors.As(err, &extErr) && extErr.Detail != "" {
			fmt.Fprintln(os.Stderr, extErr.Detail)
		}
		fmt.Fprintf(os.Stderr, "lookup failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
}
