package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconidentify/mediagrab/internal/domain"
)

func TestNewDownloadHandler(t *testing.T) {
	handler := NewDownloadHandler(newTestFormatService(&mockExtractor{}), false, testLogger())

	require.NotNil(t, handler)
	assert.NotNil(t, handler.formatSvc)
}

func TestDownloadHandler_Download_Success(t *testing.T) {
	ext := &mockExtractor{info: sampleMediaInfo()}
	handler := NewDownloadHandler(newTestFormatService(ext), false, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/download", bytes.NewBufferString(`{"url":"https://www.youtube.com/watch?v=abc"}`))
	w := httptest.NewRecorder()

	handler.Download(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp domain.ClassifiedFormats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.Equal(t, "Sample Video", resp.Title)
	assert.Equal(t, "https://i.ytimg.com/vi/abc/hqdefault.jpg", resp.ThumbnailURL)
	assert.Equal(t, []domain.DisplayFormat{
		{Label: "360p", SizeText: "5.00 MB", URL: "https://cdn/A"},
		{Label: "720p", SizeText: "Unknown", URL: "https://cdn/C"},
	}, resp.VideoFormats)
	assert.Equal(t, []domain.DisplayFormat{
		{Label: "Audio", SizeText: "Unknown", URL: "https://cdn/B"},
	}, resp.AudioFormats)
}

func TestDownloadHandler_Download_ResponseKeys(t *testing.T) {
	ext := &mockExtractor{info: &domain.MediaInfo{Title: "empty"}}
	handler := NewDownloadHandler(newTestFormatService(ext), false, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/download", bytes.NewBufferString(`{"url":"https://www.facebook.com/watch/?v=1"}`))
	w := httptest.NewRecorder()

	handler.Download(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(w.Body).Decode(&raw))
	for _, key := range []string{"title", "thumbnail", "formats", "audioFormats"} {
		assert.Contains(t, raw, key)
	}
	// Empty lists must be arrays, not null
	assert.JSONEq(t, `[]`, string(raw["formats"]))
	assert.JSONEq(t, `[]`, string(raw["audioFormats"]))
}

func TestDownloadHandler_Download_MissingURL(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no url field", `{}`},
		{"empty url", `{"url":""}`},
		{"blank url", `{"url":"   "}`},
		{"null url", `{"url":null}`},
		{"empty body", ``},
		{"invalid json", `not json`},
		{"wrong type", `{"url":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := &mockExtractor{info: sampleMediaInfo()}
			handler := NewDownloadHandler(newTestFormatService(ext), false, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/download", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Download(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"No video URL provided"}`, w.Body.String())
			assert.Zero(t, ext.calls, "extractor should not run")
		})
	}
}

func TestDownloadHandler_Download_WrongMethod(t *testing.T) {
	methods := []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch}

	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			ext := &mockExtractor{info: sampleMediaInfo()}
			handler := NewDownloadHandler(newTestFormatService(ext), false, testLogger())

			req := httptest.NewRequest(method, "/api/download", nil)
			w := httptest.NewRecorder()

			handler.Download(w, req)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
			assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
			assert.Zero(t, ext.calls)
		})
	}
}

func TestDownloadHandler_Download_ExtractionFailed(t *testing.T) {
	ext := &mockExtractor{err: domain.NewExtractionError("run yt-dlp", "u", "ERROR: <script>alert(1)</script>", errors.New("exit status 1"))}
	handler := NewDownloadHandler(newTestFormatService(ext), false, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/download", bytes.NewBufferString(`{"url":"https://example.com/nope"}`))
	w := httptest.NewRecorder()

	handler.Download(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// details are hidden by default
	assert.JSONEq(t, `{"error":"Failed to fetch video info"}`, w.Body.String())
}

func TestDownloadHandler_Download_ExtractionFailedWithDetails(t *testing.T) {
	ext := &mockExtractor{err: domain.NewExtractionError("run yt-dlp", "u", "ERROR: <script>alert(1)</script>", errors.New("exit status 1"))}
	handler := NewDownloadHandler(newTestFormatService(ext), true, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/download", bytes.NewBufferString(`{"url":"https://example.com/nope"}`))
	w := httptest.NewRecorder()

	handler.Download(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	body := w.Body.String()
	assert.NotContains(t, body, "<script>", "details must be JSON-escaped")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "Failed to fetch video info", resp.Error)
	assert.Equal(t, "ERROR: <script>alert(1)</script>", resp.Details)
}

func TestDownloadHandler_Download_BodyTooLarge(t *testing.T) {
	ext := &mockExtractor{info: sampleMediaInfo()}
	handler := NewDownloadHandler(newTestFormatService(ext), false, testLogger())

	big := `{"url":"https://www.youtube.com/watch?v=` + strings.Repeat("a", maxRequestBody) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/download", strings.NewReader(big))
	w := httptest.NewRecorder()

	handler.Download(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, ext.calls)
}
