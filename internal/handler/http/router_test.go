package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ainews-backend/internal/domain/entity"
	newsUC "ainews-backend/internal/usecase/news"
	settingsUC "ainews-backend/internal/usecase/settings"
)

type staticVerifier struct {
	subject string
	err     error
}

func (v staticVerifier) Verify(context.Context, string) (string, error) {
	return v.subject, v.err
}

type emptyItemRepo struct{}

func (emptyItemRepo) Exists(context.Context, string, string) (bool, error)   { return false, nil }
func (emptyItemRepo) Create(context.Context, *entity.NewsItem, string) error { return nil }
func (emptyItemRepo) List(context.Context) ([]*entity.NewsItem, error)       { return nil, nil }

type emptySettingsRepo struct{}

func (emptySettingsRepo) Get(context.Context, string) (*entity.UserSettings, error) {
	return nil, entity.ErrSettingsNotFound
}
func (emptySettingsRepo) Upsert(context.Context, *entity.UserSettings) error { return nil }

func newTestRouter(verifier staticVerifier) http.Handler {
	return NewRouter(RouterConfig{
		NewsService:     newsUC.Service{Repo: emptyItemRepo{}},
		SettingsService: settingsUC.Service{Repo: emptySettingsRepo{}},
		Verifier:        verifier,
		Logger:          slog.Default(),
	})
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(staticVerifier{err: errors.New("bad token")})

	for _, target := range []string{"/news", "/user-news-settings"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Authorization", "Bearer whatever")
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestRouter_AuthenticatedNewsRequest(t *testing.T) {
	router := newTestRouter(staticVerifier{subject: "user_1"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/news", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_HealthIsOpen(t *testing.T) {
	router := newTestRouter(staticVerifier{err: errors.New("bad token")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_MetricsIsOpen(t *testing.T) {
	router := newTestRouter(staticVerifier{err: errors.New("bad token")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthHandler_StorageFailure(t *testing.T) {
	handler := HealthHandler{Storage: failingChecker{}}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type failingChecker struct{}

func (failingChecker) Check(context.Context) error { return errors.New("unreachable") }
