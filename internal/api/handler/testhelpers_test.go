package handler

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/iconidentify/mediagrab/internal/config"
	"github.com/iconidentify/mediagrab/internal/domain"
	"github.com/iconidentify/mediagrab/internal/service"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockExtractor is a test implementation of extractor.Extractor.
type mockExtractor struct {
	info     *domain.MediaInfo
	err      error
	checkErr error
	calls    int
}

func (m *mockExtractor) Extract(ctx context.Context, url string) (*domain.MediaInfo, error) {
	m.calls++
	return m.info, m.err
}

func (m *mockExtractor) Check(ctx context.Context) error {
	return m.checkErr
}

func (m *mockExtractor) Strategy() string {
	return "mock"
}

// newTestFormatService wires a real FormatService to a mock extractor.
func newTestFormatService(ext *mockExtractor) *service.FormatService {
	cfg := config.Default().Extractor
	cfg.Timeout = 5 * time.Second
	return service.NewFormatService(ext, cfg, testLogger())
}

func int64Ptr(n int64) *int64 {
	return &n
}

// sampleMediaInfo mirrors the example order: video, audio-only, video, muted.
func sampleMediaInfo() *domain.MediaInfo {
	return &domain.MediaInfo{
		Title:        "Sample Video",
		ThumbnailURL: "https://i.ytimg.com/vi/abc/hqdefault.jpg",
		Streams: []domain.StreamDescriptor{
			{AudioCodec: "mp4a.40.2", VideoCodec: "avc1.42001E", QualityLabel: "360p", SizeBytes: int64Ptr(5242880), StreamURL: "https://cdn/A"},
			{AudioCodec: "opus", VideoCodec: domain.CodecNone, StreamURL: "https://cdn/B"},
			{AudioCodec: "mp4a.40.2", VideoCodec: "avc1.64001F", QualityLabel: "720p", StreamURL: "https://cdn/C"},
			{AudioCodec: domain.CodecNone, VideoCodec: "vp9", QualityLabel: "1080p", SizeBytes: int64Ptr(1), StreamURL: "https://cdn/D"},
		},
	}
}
