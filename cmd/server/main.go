package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iconidentify/mediagrab/internal/api"
	"github.com/iconidentify/mediagrab/internal/api/handler"
	"github.com/iconidentify/mediagrab/internal/config"
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
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mediagrab %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Load configuration before the logger so the level applies from the start
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Validate already rejected unknown levels
	level, _ := cfg.Log.SlogLevel()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting mediagrab",
		"version", Version,
		"build_time", BuildTime,
		"strategy", cfg.Extractor.Strategy,
	)

	if cfg.Extractor.AutoInstall {
		installCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		err := extractor.Install(installCtx, logger)
		cancel()
		if err != nil {
			logger.Error("failed to install yt-dlp", "error", err)
			os.Exit(1)
		}
	}

	// Initialize dependencies
	ext, err := extractor.New(cfg.Extractor, logger)
	if err != nil {
		logger.Error("failed to create extractor", "error", err)
		os.Exit(1)
	}

	checkCtx, cancelCheck := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ext.Check(checkCtx); err != nil {
		// Keep serving; /ready reports the failure.
		logger.Warn("extractor not runnable", "strategy", ext.Strategy(), "error", err)
	}
	cancelCheck()

	formatSvc := service.NewFormatService(ext, cfg.Extractor, logger)

	// Initialize handlers
	downloadHandler := handler.NewDownloadHandler(formatSvc, cfg.Server.ExposeErrorDetails, logger)
	healthHandler := handler.NewHealthHandler(formatSvc, logger)
	uiHandler := handler.NewUIHandler()

	// Setup router
	router := api.NewRouter(downloadHandler, healthHandler, uiHandler, cfg.Server, logger)

	// Setup HTTP server
	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Graceful shutdown; in-flight lookups are bounded by the extractor timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Extractor.Timeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
