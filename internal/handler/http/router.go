package http

import (
	"log/slog"
	"net/http"

	"ainews-backend/internal/handler/http/auth"
	"ainews-backend/internal/handler/http/news"
	"ainews-backend/internal/handler/http/requestid"
	"ainews-backend/internal/handler/http/settings"
	newsUC "ainews-backend/internal/usecase/news"
	settingsUC "ainews-backend/internal/usecase/settings"
)

// RouterConfig carries the dependencies needed to assemble the API routes.
type RouterConfig struct {
	NewsService     newsUC.Service
	SettingsService settingsUC.Service
	Verifier        auth.TokenVerifier
	Storage         StorageChecker
	Logger          *slog.Logger
	Version         string
}

// NewRouter assembles the API handler chain. Business routes sit behind
// bearer authentication; health and metrics stay open.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	requireAuth := auth.Middleware(cfg.Verifier, cfg.Logger)

	mux.Handle("GET /news", requireAuth(news.ListHandler{
		Svc:    cfg.NewsService,
		Logger: cfg.Logger,
	}))
	mux.Handle("GET /user-news-settings", requireAuth(settings.GetHandler{
		Svc:    cfg.SettingsService,
		Logger: cfg.Logger,
	}))
	mux.Handle("POST /user-news-settings", requireAuth(settings.SaveHandler{
		Svc:    cfg.SettingsService,
		Logger: cfg.Logger,
	}))

	mux.Handle("GET /health", HealthHandler{Storage: cfg.Storage, Version: cfg.Version})
	mux.Handle("GET /metrics", MetricsHandler())

	var handler http.Handler = mux
	handler = MetricsMiddleware(handler)
	handler = Logging(cfg.Logger)(handler)
	handler = Recover(cfg.Logger)(handler)
	handler = requestid.Middleware(handler)
	return handler
}
