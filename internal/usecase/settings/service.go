// Package settings provides use cases for per-user notification settings.
package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ainews-backend/internal/domain/entity"
	"ainews-backend/internal/repository"
)

// ErrMissingUserID is returned when a save request carries no user id.
var ErrMissingUserID = errors.New("user id is required")

// Service provides user settings use cases.
// It handles defaulting for users who have never saved settings and
// delegates persistence to the repository.
type Service struct {
	Repo repository.SettingsRepository
}

// Get retrieves the settings for the given user. A nil result with a nil
// error means the user has never saved settings; the caller decides how to
// present that.
func (s *Service) Get(ctx context.Context, userID string) (*entity.UserSettings, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	stored, err := s.Repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrSettingsNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return stored, nil
}

// Save persists the provider selections for the given user, replacing any
// previous selections. Unknown provider names are stored as-is so new
// providers can roll out without a coordinated deploy.
func (s *Service) Save(ctx context.Context, userID string, providers map[string]bool) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if providers == nil {
		providers = make(map[string]bool)
	}

	settings := &entity.UserSettings{
		UserID:    userID,
		Providers: providers,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Upsert(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
