package extractor

import (
	"context"

	"github.com/iconidentify/mediagrab/internal/domain"
)

// Extractor resolves a page URL into media info using an external tool.
type Extractor interface {
	// Extract fetches aggregated metadata for url. Every failure wraps
	// domain.ErrExtractionFailed.
	Extract(ctx context.Context, url string) (*domain.MediaInfo, error)

	// Check verifies the underlying tool can be run.
	Check(ctx context.Context) error

	// Strategy names the invocation strategy, for logs and stats.
	Strategy() string
}
