package http

import (
	"context"
	"net/http"
	"time"

	"ainews-backend/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks,omitempty"`
	Version   string                 `json:"version,omitempty"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// StorageChecker probes backing storage reachability.
type StorageChecker interface {
	Check(ctx context.Context) error
}

// HealthHandler serves GET /health. When a storage checker is configured it
// verifies the document store is reachable; otherwise it reports process
// liveness only.
type HealthHandler struct {
	Storage StorageChecker
	Version string
}

func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	status := "healthy"
	statusCode := http.StatusOK

	if h.Storage != nil {
		if err := h.Storage.Check(ctx); err != nil {
			checks["storage"] = CheckStatus{Status: "unhealthy", Message: err.Error()}
			status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
		} else {
			checks["storage"] = CheckStatus{Status: "healthy"}
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}
