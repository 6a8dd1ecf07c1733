package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"ainews-backend/internal/domain/entity"
	"ainews-backend/internal/repository"
)

// SettingsRepo persists per-user settings in the users container, which is
// partitioned by the document id (the user id).
type SettingsRepo struct {
	container *azcosmos.ContainerClient
}

// NewSettingsRepo creates a SettingsRepo bound to the users container.
func NewSettingsRepo(client *Client) repository.SettingsRepository {
	return &SettingsRepo{container: client.Users}
}

// Get returns the settings for the given user, or
// entity.ErrSettingsNotFound if the user has never saved any.
func (repo *SettingsRepo) Get(ctx context.Context, userID string) (*entity.UserSettings, error) {
	pk := azcosmos.NewPartitionKeyString(userID)
	resp, err := repo.container.ReadItem(ctx, pk, userID, nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, entity.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	var doc settingsDocument
	if err := json.Unmarshal(resp.Value, &doc); err != nil {
		return nil, fmt.Errorf("Get: unmarshal: %w", err)
	}
	return decodeSettings(doc), nil
}

// Upsert writes the settings document, replacing any previous version.
func (repo *SettingsRepo) Upsert(ctx context.Context, settings *entity.UserSettings) error {
	body, err := json.Marshal(encodeSettings(settings))
	if err != nil {
		return fmt.Errorf("Upsert: marshal: %w", err)
	}

	pk := azcosmos.NewPartitionKeyString(settings.UserID)
	if _, err := repo.container.UpsertItem(ctx, pk, body, nil); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}
