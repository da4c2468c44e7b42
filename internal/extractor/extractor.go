// Package extractor invokes yt-dlp and parses its output into domain types.
//
// Two invocation strategies exist: a direct subprocess ("exec") and the
// go-ytdlp command builder ("library"). One is chosen per deployment; there is
// no fallback between them. In both the page URL is passed as a single argv
// element after "--" and never goes through a shell.
package extractor

import (
	"fmt"
	"log/slog"

	"github.com/iconidentify/mediagrab/internal/config"
)

const skipDashArgs = "youtube:skip=dash"

// New returns the extractor selected by cfg.Strategy.
func New(cfg config.ExtractorConfig, logger *slog.Logger) (Extractor, error) {
	switch cfg.Strategy {
	case config.StrategyExec:
		return NewExecExtractor(cfg, logger), nil
	case config.StrategyLibrary:
		return NewLibraryExtractor(cfg, logger), nil
	}
	return nil, fmt.Errorf("unknown extractor strategy %q", cfg.Strategy)
}

// infoArgs builds the yt-dlp flags for a single aggregated metadata dump.
func infoArgs(cfg config.ExtractorConfig) []string {
	args := []string{
		"--dump-single-json",
		"--no-warnings",
		"--no-playlist",
		"--ignore-config",
	}
	if cfg.PreferFreeFormats {
		args = append(args, "--prefer-free-formats")
	}
	if cfg.SkipDashManifest {
		args = append(args, "--extractor-args", skipDashArgs)
	}
	return args
}
