package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/iconidentify/mediagrab/internal/config"
	"github.com/iconidentify/mediagrab/internal/domain"
)

// LibraryExtractor runs yt-dlp through the go-ytdlp command builder.
type LibraryExtractor struct {
	cfg    config.ExtractorConfig
	logger *slog.Logger
}

// NewLibraryExtractor creates a go-ytdlp backed extractor.
func NewLibraryExtractor(cfg config.ExtractorConfig, logger *slog.Logger) *LibraryExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LibraryExtractor{
		cfg:    cfg,
		logger: logger,
	}
}

// Install fetches a yt-dlp build into go-ytdlp's cache when none is usable.
func Install(ctx context.Context, logger *slog.Logger) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("install yt-dlp: %w", err)
	}
	logger.Info("yt-dlp installed")
	return nil
}

// Strategy implements Extractor.
func (e *LibraryExtractor) Strategy() string {
	return config.StrategyLibrary
}

func (e *LibraryExtractor) command() *ytdlp.Command {
	cmd := ytdlp.New().
		DumpSingleJSON().
		NoWarnings().
		NoPlaylist().
		IgnoreConfig()

	if e.cfg.PreferFreeFormats {
		cmd = cmd.PreferFreeFormats()
	}
	if e.cfg.SkipDashManifest {
		cmd = cmd.ExtractorArgs(skipDashArgs)
	}
	// With auto-install go-ytdlp resolves its own cached executable.
	if !e.cfg.AutoInstall && e.cfg.Binary != "" {
		cmd = cmd.SetExecutable(e.cfg.Binary)
	}
	return cmd
}

// Extract implements Extractor.
func (e *LibraryExtractor) Extract(ctx context.Context, url string) (*domain.MediaInfo, error) {
	start := time.Now()
	res, err := e.command().Run(ctx, "--", url)

	var stdout, detail string
	if res != nil {
		stdout = res.Stdout
		detail = truncateDetail(res.Stderr)
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		e.logger.Warn("yt-dlp failed",
			"url", url,
			"error", err,
			"stderr", detail,
			"duration", time.Since(start),
		)
		return nil, domain.NewExtractionError("run yt-dlp", url, detail, err)
	}

	info, err := ParseInfo([]byte(stdout))
	if err != nil {
		e.logger.Warn("yt-dlp output unparseable",
			"url", url,
			"error", err,
			"stdout_bytes", len(stdout),
			"stderr", detail,
		)
		return nil, domain.NewExtractionError("parse yt-dlp output", url, detail, err)
	}

	e.logger.Debug("yt-dlp finished",
		"url", url,
		"streams", len(info.Streams),
		"duration", time.Since(start),
	)
	return info, nil
}

// Check implements Extractor.
func (e *LibraryExtractor) Check(ctx context.Context) error {
	cmd := ytdlp.New()
	if !e.cfg.AutoInstall && e.cfg.Binary != "" {
		cmd = cmd.SetExecutable(e.cfg.Binary)
	}

	res, err := cmd.Run(ctx, "--version")
	if err != nil {
		if res != nil {
			return fmt.Errorf("yt-dlp --version: %w: %s", err, truncateDetail(res.Stderr))
		}
		return fmt.Errorf("yt-dlp --version: %w", err)
	}
	e.logger.Debug("yt-dlp available", "version", strings.TrimSpace(res.Stdout))
	return nil
}
