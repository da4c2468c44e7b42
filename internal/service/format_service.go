package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iconidentify/mediagrab/internal/config"
	"github.com/iconidentify/mediagrab/internal/domain"
	"github.com/iconidentify/mediagrab/internal/extractor"
)

// FormatService looks up the downloadable formats of a video URL.
type FormatService struct {
	extractor extractor.Extractor
	timeout   time.Duration
	logger    *slog.Logger
}

// NewFormatService creates a new format service.
func NewFormatService(ext extractor.Extractor, cfg config.ExtractorConfig, logger *slog.Logger) *FormatService {
	return &FormatService{
		extractor: ext,
		timeout:   cfg.Timeout,
		logger:    logger,
	}
}

// Lookup runs the extractor once for rawURL and classifies the result.
// The extractor call is bounded by the configured timeout; there are no retries.
func (s *FormatService) Lookup(ctx context.Context, rawURL string) (*domain.ClassifiedFormats, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return nil, domain.ErrMissingURL
	}

	lookupID := "ext_" + uuid.New().String()[:8]
	logger := s.logger.With("lookup_id", lookupID)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	info, err := s.extractor.Extract(ctx, url)
	if err != nil {
		var extErr *domain.ExtractionError
		if !errors.As(err, &extErr) {
			extErr = domain.NewExtractionError("extract", url, "", err)
			err = extErr
		}
		extErr.ID = lookupID
		logger.Error("format lookup failed",
			"url", url,
			"strategy", s.extractor.Strategy(),
			"error", err,
			"duration", time.Since(start),
		)
		return nil, err
	}

	if info == nil {
		info = &domain.MediaInfo{}
	}
	result := ClassifyFormats(info)

	logger.Info("format lookup complete",
		"url", url,
		"strategy", s.extractor.Strategy(),
		"streams", len(info.Streams),
		"video_formats", len(result.VideoFormats),
		"audio_formats", len(result.AudioFormats),
		"duration", time.Since(start),
	)

	return result, nil
}

// Check reports whether the extractor is usable.
func (s *FormatService) Check(ctx context.Context) error {
	return s.extractor.Check(ctx)
}

// Strategy returns the configured extractor strategy.
func (s *FormatService) Strategy() string {
	return s.extractor.Strategy()
}
