package news

import (
	"log/slog"
	"net/http"
	"time"

	"ainews-backend/internal/handler/http/respond"
	"ainews-backend/internal/observability/logging"
	newsUC "ainews-backend/internal/usecase/news"
)

// ListHandler serves GET /news, returning all harvested items newest first.
type ListHandler struct {
	Svc    newsUC.Service
	Logger *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()
	logger := logging.WithRequestID(ctx, h.Logger)

	items, err := h.Svc.List(ctx)
	if err != nil {
		logger.Error("Failed to list news items", "error", err.Error())
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toDTO(item))
	}

	logger.Info("News list request",
		"returned_count", len(dtos),
		"duration_ms", time.Since(startTime).Milliseconds())

	respond.JSON(w, http.StatusOK, dtos)
}
