package config

import (
	"fmt"
	"strings"
)

// CosmosConfig holds connection and layout settings for the Cosmos DB
// document store.
type CosmosConfig struct {
	// Endpoint is the account endpoint URL. Required.
	Endpoint string

	// Key is the account key credential. Required.
	Key string

	// Database is the database name. Default: "ai_news".
	Database string

	// ItemsContainer stores transformed news items. Default: "news_items".
	ItemsContainer string

	// UsersContainer stores per-user settings. Default: "users".
	UsersContainer string

	// PartitionKeyField is the logical partition field configured on the
	// items container, e.g. "/id". Default: "id".
	PartitionKeyField string

	// PartitionValue is the constant partition value used when the
	// partition field is not the item id. Default: "items".
	PartitionValue string
}

// LoadCosmosConfig loads Cosmos DB configuration from environment variables.
//
// Environment variables:
//   - COSMOS_ENDPOINT (required)
//   - COSMOS_KEY (required)
//   - COSMOS_DB_NAME (default: "ai_news")
//   - COSMOS_CONTAINER (default: "news_items")
//   - COSMOS_USERS_CONTAINER (default: "users")
//   - COSMOS_PARTITION_KEY (default: "id")
//   - COSMOS_PARTITION_VALUE (default: "items")
func LoadCosmosConfig() (*CosmosConfig, error) {
	endpoint, err := RequireEnv("COSMOS_ENDPOINT")
	if err != nil {
		return nil, err
	}
	key, err := RequireEnv("COSMOS_KEY")
	if err != nil {
		return nil, err
	}

	cfg := &CosmosConfig{
		Endpoint:          strings.TrimRight(endpoint, "/"),
		Key:               key,
		Database:          GetEnvOrDefault("COSMOS_DB_NAME", "ai_news"),
		ItemsContainer:    GetEnvOrDefault("COSMOS_CONTAINER", "news_items"),
		UsersContainer:    GetEnvOrDefault("COSMOS_USERS_CONTAINER", "users"),
		PartitionKeyField: GetEnvOrDefault("COSMOS_PARTITION_KEY", "id"),
		PartitionValue:    GetEnvOrDefault("COSMOS_PARTITION_VALUE", "items"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cosmos configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c *CosmosConfig) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database name cannot be empty")
	}
	if c.ItemsContainer == "" {
		return fmt.Errorf("items container cannot be empty")
	}
	if c.UsersContainer == "" {
		return fmt.Errorf("users container cannot be empty")
	}
	if strings.TrimSpace(strings.TrimPrefix(c.PartitionKeyField, "/")) == "" {
		return fmt.Errorf("partition key field cannot be empty")
	}
	return nil
}
