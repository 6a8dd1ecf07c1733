package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ainews-backend/internal/domain/entity"
)

type stubSettingsRepo struct {
	stored    map[string]*entity.UserSettings
	getErr    error
	upsertErr error
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{stored: make(map[string]*entity.UserSettings)}
}

func (s *stubSettingsRepo) Get(_ context.Context, userID string) (*entity.UserSettings, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if settings, ok := s.stored[userID]; ok {
		return settings, nil
	}
	return nil, entity.ErrSettingsNotFound
}

func (s *stubSettingsRepo) Upsert(_ context.Context, settings *entity.UserSettings) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.stored[settings.UserID] = settings
	return nil
}

func TestService_Get_ReturnsStoredSettings(t *testing.T) {
	repo := newStubSettingsRepo()
	repo.stored["user_1"] = &entity.UserSettings{
		UserID:    "user_1",
		Providers: map[string]bool{"OpenAI": true},
	}
	svc := Service{Repo: repo}

	got, err := svc.Get(context.Background(), "user_1")
	require.NoError(t, err)
	assert.True(t, got.Providers["OpenAI"])
}

func TestService_Get_NilWhenAbsent(t *testing.T) {
	svc := Service{Repo: newStubSettingsRepo()}

	got, err := svc.Get(context.Background(), "user_new")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_Get_RequiresUserID(t *testing.T) {
	svc := Service{Repo: newStubSettingsRepo()}

	_, err := svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestService_Get_PropagatesRepoError(t *testing.T) {
	repo := newStubSettingsRepo()
	repo.getErr = errors.New("connection refused")
	svc := Service{Repo: repo}

	_, err := svc.Get(context.Background(), "user_1")
	assert.Error(t, err)
}

func TestService_Save(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := Service{Repo: repo}

	err := svc.Save(context.Background(), "user_1", map[string]bool{"Anthropic": true, "Google": false})
	require.NoError(t, err)

	stored := repo.stored["user_1"]
	require.NotNil(t, stored)
	assert.True(t, stored.Providers["Anthropic"])
	assert.False(t, stored.Providers["Google"])
	assert.False(t, stored.UpdatedAt.IsZero())
}

func TestService_Save_RequiresUserID(t *testing.T) {
	svc := Service{Repo: newStubSettingsRepo()}

	err := svc.Save(context.Background(), "", map[string]bool{"OpenAI": true})
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestService_Save_NilProvidersBecomesEmpty(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := Service{Repo: repo}

	require.NoError(t, svc.Save(context.Background(), "user_1", nil))
	require.NotNil(t, repo.stored["user_1"])
	assert.NotNil(t, repo.stored["user_1"].Providers)
}
