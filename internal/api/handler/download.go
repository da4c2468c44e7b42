package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iconidentify/mediagrab/internal/domain"
	"github.com/iconidentify/mediagrab/internal/service"
)

// maxRequestBody caps the size of a download request body.
const maxRequestBody = 1 << 20

// User-facing error messages.
const (
	msgMethodNotAllowed = "Method not allowed"
	msgNoURL            = "No video URL provided"
	msgFetchFailed      = "Failed to fetch video info"
	msgInternal         = "Internal server error"
)

// DownloadHandler resolves a video URL into downloadable formats.
type DownloadHandler struct {
	formatSvc     *service.FormatService
	exposeDetails bool
	logger        *slog.Logger
}

// NewDownloadHandler creates a new download handler.
// When exposeDetails is set, extractor diagnostics are returned in 500 responses.
func NewDownloadHandler(formatSvc *service.FormatService, exposeDetails bool, logger *slog.Logger) *DownloadHandler {
	return &DownloadHandler{
		formatSvc:     formatSvc,
		exposeDetails: exposeDetails,
		logger:        logger,
	}
}

// DownloadRequest is the JSON request body for a format lookup.
type DownloadRequest struct {
	URL string `json:"url"`
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Download handles POST /download and POST /api/download.
func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.MethodNotAllowed(w, r)
		return
	}

	var req DownloadRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("undecodable download request", "error", err)
		writeError(w, http.StatusBadRequest, msgNoURL)
		return
	}

	result, err := h.formatSvc.Lookup(r.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingURL):
			writeError(w, http.StatusBadRequest, msgNoURL)
		case errors.Is(err, domain.ErrExtractionFailed):
			resp := ErrorResponse{Error: msgFetchFailed}
			var extErr *domain.ExtractionError
			if h.exposeDetails && errors.As(err, &extErr) {
				resp.Details = extErr.Detail
			}
			writeJSON(w, http.StatusInternalServerError, resp)
		default:
			h.logger.Error("download lookup failed", "error", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// MethodNotAllowed answers any non-POST request to the download endpoints.
func (h *DownloadHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
