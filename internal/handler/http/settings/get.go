// Package settings provides HTTP handlers for per-user notification settings.
package settings

import (
	"log/slog"
	"net/http"

	"ainews-backend/internal/handler/http/auth"
	"ainews-backend/internal/handler/http/respond"
	"ainews-backend/internal/observability/logging"
	settingsUC "ainews-backend/internal/usecase/settings"
)

// GetHandler serves GET /user-news-settings, returning the caller's provider
// selections. Users who never saved settings receive an empty selection.
type GetHandler struct {
	Svc    settingsUC.Service
	Logger *slog.Logger
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	userID := auth.SubjectFromContext(ctx)
	if userID == "" {
		respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	stored, err := h.Svc.Get(ctx, userID)
	if err != nil {
		logger.Error("Failed to load user settings", "error", err.Error())
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	// Users who never saved settings get an empty object, not a 404.
	if stored == nil {
		respond.JSON(w, http.StatusOK, map[string]any{})
		return
	}

	respond.JSON(w, http.StatusOK, DTO{
		UserID:    stored.UserID,
		Providers: stored.Providers,
	})
}
