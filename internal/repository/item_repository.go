// Package repository defines the persistence interfaces consumed by the use
// case layer. Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"ainews-backend/internal/domain/entity"
)

// ItemRepository manages persisted news items keyed by (id, partition value).
type ItemRepository interface {
	// Exists reports whether an item with the given id already exists under
	// the partition value. A storage not-found condition maps to (false, nil);
	// any other storage error is returned as-is so callers can distinguish
	// "new item" from "storage unavailable".
	Exists(ctx context.Context, id, partitionValue string) (bool, error)

	// Create inserts a new item. It fails with entity.ErrItemAlreadyExists
	// when the id is already present; it never silently overwrites. This
	// conflict semantic is the real idempotency guarantee of the harvest
	// pipeline, the Exists check is only a cost optimization.
	Create(ctx context.Context, item *entity.NewsItem, partitionValue string) error

	// List returns all stored items.
	List(ctx context.Context) ([]*entity.NewsItem, error)
}

// SettingsRepository manages per-user provider-interest flags.
type SettingsRepository interface {
	// Get returns the settings for a user, or entity.ErrSettingsNotFound.
	Get(ctx context.Context, userID string) (*entity.UserSettings, error)

	// Upsert creates or replaces the settings document for a user.
	Upsert(ctx context.Context, settings *entity.UserSettings) error
}
