package news

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ainews-backend/internal/domain/entity"
	newsUC "ainews-backend/internal/usecase/news"
)

type stubItemRepo struct {
	items   []*entity.NewsItem
	listErr error
}

func (s *stubItemRepo) Exists(context.Context, string, string) (bool, error) { return false, nil }

func (s *stubItemRepo) Create(context.Context, *entity.NewsItem, string) error { return nil }

func (s *stubItemRepo) List(context.Context) ([]*entity.NewsItem, error) {
	return s.items, s.listErr
}

func TestListHandler(t *testing.T) {
	repo := &stubItemRepo{
		items: []*entity.NewsItem{
			{
				ID:        "abc",
				Title:     "GPT-5 Released",
				Content:   "Full announcement text.",
				URL:       "https://openai.com/gpt5",
				Date:      "2025-08-01",
				FetchedAt: time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC),
				Levels: map[string]string{
					"content_a1": "Simple version.",
					"content_c2": "Advanced version.",
				},
			},
		},
	}
	handler := ListHandler{Svc: newsUC.Service{Repo: repo}, Logger: slog.Default()}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "GPT-5 Released", body[0]["title"])
	assert.Equal(t, "Simple version.", body[0]["content_a1"])
	assert.Equal(t, "Advanced version.", body[0]["content_c2"])
	_, hasB1 := body[0]["content_b1"]
	assert.False(t, hasB1, "absent levels must be omitted from the response")
}

func TestListHandler_Empty(t *testing.T) {
	handler := ListHandler{Svc: newsUC.Service{Repo: &stubItemRepo{}}, Logger: slog.Default()}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListHandler_RepositoryError(t *testing.T) {
	repo := &stubItemRepo{listErr: errors.New("dial tcp: connection refused")}
	handler := ListHandler{Svc: newsUC.Service{Repo: repo}, Logger: slog.Default()}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "internal server error"}`, rec.Body.String())
}
