package settings

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ainews-backend/internal/domain/entity"
	"ainews-backend/internal/handler/http/auth"
	"ainews-backend/internal/handler/http/respond"
	"ainews-backend/internal/observability/logging"
	settingsUC "ainews-backend/internal/usecase/settings"
)

// SaveHandler serves POST /user-news-settings. The body carries one boolean
// flag per provider; every known provider is written explicitly so a flag
// the client omits reads as false, not as unchanged.
type SaveHandler struct {
	Svc    settingsUC.Service
	Logger *slog.Logger
}

func (h SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	userID := auth.SubjectFromContext(ctx)
	if userID == "" {
		respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var body SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid JSON"))
		return
	}

	providers := make(map[string]bool, len(entity.Providers))
	for _, name := range entity.Providers {
		flag, _ := body[name].(bool)
		providers[name] = flag
	}

	if err := h.Svc.Save(ctx, userID, providers); err != nil {
		logger.Error("Failed to save user settings", "error", err.Error())
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
