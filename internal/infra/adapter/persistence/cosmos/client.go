// Package cosmos implements the repository interfaces on Azure Cosmos DB.
// News items and user settings live in separate containers of one database;
// all access goes through the SDK's container clients.
package cosmos

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"ainews-backend/internal/config"
)

// Client bundles the container handles the repositories operate on.
type Client struct {
	Items *azcosmos.ContainerClient
	Users *azcosmos.ContainerClient
}

// NewClient connects to Cosmos DB with key authentication and resolves the
// configured containers. It does not verify that the containers exist; the
// first operation surfaces that error.
func NewClient(cfg *config.CosmosConfig) (*Client, error) {
	cred, err := azcosmos.NewKeyCredential(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("cosmos credential: %w", err)
	}

	client, err := azcosmos.NewClientWithKey(cfg.Endpoint, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("cosmos client: %w", err)
	}

	items, err := client.NewContainer(cfg.Database, cfg.ItemsContainer)
	if err != nil {
		return nil, fmt.Errorf("cosmos items container: %w", err)
	}

	users, err := client.NewContainer(cfg.Database, cfg.UsersContainer)
	if err != nil {
		return nil, fmt.Errorf("cosmos users container: %w", err)
	}

	return &Client{Items: items, Users: users}, nil
}

// Check verifies the items container is reachable. Used by health checks.
func (c *Client) Check(ctx context.Context) error {
	if _, err := c.Items.Read(ctx, nil); err != nil {
		return fmt.Errorf("cosmos check: %w", err)
	}
	return nil
}
