package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/mediagrab/internal/api/handler"
	mw "github.com/iconidentify/mediagrab/internal/api/middleware"
	"github.com/iconidentify/mediagrab/internal/config"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	downloadHandler *handler.DownloadHandler,
	healthHandler *handler.HealthHandler,
	uiHandler *handler.UIHandler,
	cfg config.ServerConfig,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath) // Normalize paths (e.g., //ready -> /ready)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(mw.Recovery(logger))
	if cfg.WriteTimeout > 0 {
		r.Use(middleware.Timeout(cfg.WriteTimeout))
	}
	r.Use(mw.CORS(cfg.AllowedOrigin))

	// Health endpoints
	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/api/stats", healthHandler.Stats)

	// Web UI
	r.Get("/", uiHandler.Index)
	r.Get("/static/app.js", uiHandler.Script)

	// Format lookup. Mounted for every method so non-POST gets a JSON 405.
	r.HandleFunc("/download", downloadHandler.Download)
	r.HandleFunc("/api/download", downloadHandler.Download)

	return r
}
