package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"ainews-backend/internal/handler/http/respond"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// subjectKey is the context key for the verified token subject.
const subjectKey contextKey = "auth_subject"

// SubjectFromContext retrieves the verified token subject from the context.
// Returns an empty string if the request was not authenticated.
func SubjectFromContext(ctx context.Context) string {
	if sub, ok := ctx.Value(subjectKey).(string); ok {
		return sub
	}
	return ""
}

// WithSubject adds a verified subject to the context. Exported for handler
// tests that bypass the middleware.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// TokenVerifier verifies a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Middleware returns middleware that requires a valid bearer token on every
// request. Unauthenticated requests receive 401 with a generic message; the
// verification failure is logged, never returned to the client.
func Middleware(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			subject, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				logger.Warn("token verification failed",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()))
				respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			ctx := WithSubject(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
