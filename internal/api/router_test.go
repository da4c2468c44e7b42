package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconidentify/mediagrab/internal/api/handler"
	"github.com/iconidentify/mediagrab/internal/config"
	"github.com/iconidentify/mediagrab/internal/domain"
	"github.com/iconidentify/mediagrab/internal/service"
)

type stubExtractor struct {
	info *domain.MediaInfo
}

func (s *stubExtractor) Extract(ctx context.Context, url string) (*domain.MediaInfo, error) {
	return s.info, nil
}

func (s *stubExtractor) Check(ctx context.Context) error { return nil }

func (s *stubExtractor) Strategy() string { return "stub" }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Default()
	cfg.Extractor.Timeout = 5 * time.Second

	size := int64(5242880)
	ext := &stubExtractor{info: &domain.MediaInfo{
		Title: "Routed",
		Streams: []domain.StreamDescriptor{
			{AudioCodec: "mp4a.40.2", VideoCodec: "avc1", QualityLabel: "360p", SizeBytes: &size, StreamURL: "https://cdn/v"},
		},
	}}
	svc := service.NewFormatService(ext, cfg.Extractor, logger)

	return NewRouter(
		handler.NewDownloadHandler(svc, false, logger),
		handler.NewHealthHandler(svc, logger),
		handler.NewUIHandler(),
		cfg.Server,
		logger,
	)
}

func TestRouter_DownloadRoutes(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/download", "/api/download"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{"url":"https://youtu.be/abc"}`))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp domain.ClassifiedFormats
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "Routed", resp.Title)
			require.Len(t, resp.VideoFormats, 1)
			assert.Equal(t, "5.00 MB", resp.VideoFormats[0].SizeText)
		})
	}
}

func TestRouter_DownloadWrongMethodIsJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/download", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
}

func TestRouter_Preflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/download", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_HealthAndUI(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		path string
		want int
	}{
		{"/health", http.StatusOK},
		{"/ready", http.StatusOK},
		{"/api/stats", http.StatusOK},
		{"/", http.StatusOK},
		{"/static/app.js", http.StatusOK},
		{"//ready", http.StatusOK},
		{"/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
