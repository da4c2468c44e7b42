package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/iconidentify/mediagrab/internal/config"
	"github.com/iconidentify/mediagrab/internal/domain"
)

// waitDelay bounds how long Wait blocks on output pipes after the process is killed.
const waitDelay = 5 * time.Second

// ExecExtractor runs the yt-dlp binary directly.
type ExecExtractor struct {
	binary string
	args   []string
	logger *slog.Logger
}

// NewExecExtractor creates an extractor that invokes cfg.Binary as a subprocess.
func NewExecExtractor(cfg config.ExtractorConfig, logger *slog.Logger) *ExecExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecExtractor{
		binary: cfg.Binary,
		args:   infoArgs(cfg),
		logger: logger,
	}
}

// Strategy implements Extractor.
func (e *ExecExtractor) Strategy() string {
	return config.StrategyExec
}

// Extract implements Extractor. The process is bound to ctx and always reaped.
func (e *ExecExtractor) Extract(ctx context.Context, url string) (*domain.MediaInfo, error) {
	args := make([]string, 0, len(e.args)+2)
	args = append(args, e.args...)
	args = append(args, "--", url)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	detail := truncateDetail(stderr.String())

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

	info, err := ParseInfo(stdout.Bytes())
	if err != nil {
		e.logger.Warn("yt-dlp output unparseable",
			"url", url,
			"error", err,
			"stdout_bytes", stdout.Len(),
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

// Check implements Extractor by running the binary with --version.
func (e *ExecExtractor) Check(ctx context.Context) error {
	path, err := exec.LookPath(e.binary)
	if err != nil {
		return fmt.Errorf("yt-dlp not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.WaitDelay = waitDelay
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("yt-dlp --version: %w: %s", err, truncateDetail(string(exitErr.Stderr)))
		}
		return fmt.Errorf("yt-dlp --version: %w", err)
	}
	e.logger.Debug("yt-dlp available", "path", path, "version", string(bytes.TrimSpace(out)))
	return nil
}
