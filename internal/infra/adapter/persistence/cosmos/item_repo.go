package cosmos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"ainews-backend/internal/domain/entity"
	"ainews-backend/internal/repository"
)

// ItemRepo persists news items in the items container.
type ItemRepo struct {
	container      *azcosmos.ContainerClient
	partitionField string
}

// NewItemRepo creates an ItemRepo bound to the items container.
// partitionField is the container's partition key path without the leading
// slash ("id" when documents are partitioned by their own id).
func NewItemRepo(client *Client, partitionField string) repository.ItemRepository {
	return &ItemRepo{
		container:      client.Items,
		partitionField: partitionField,
	}
}

// Exists reports whether a document with the given id is already stored.
// A 404 from a point read means the item is new; any other failure is
// returned to the caller.
func (repo *ItemRepo) Exists(ctx context.Context, id, partitionValue string) (bool, error) {
	pk := azcosmos.NewPartitionKeyString(partitionValue)
	_, err := repo.container.ReadItem(ctx, pk, id, nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("Exists: %w", err)
	}
	return true, nil
}

// Create inserts a new item document. A 409 conflict maps to
// entity.ErrItemAlreadyExists so the caller can distinguish a lost dedup
// race from a genuine storage failure.
func (repo *ItemRepo) Create(ctx context.Context, item *entity.NewsItem, partitionValue string) error {
	doc := encodeItem(item, repo.partitionField, partitionValue)
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("Create: marshal: %w", err)
	}

	pk := azcosmos.NewPartitionKeyString(partitionValue)
	if _, err := repo.container.CreateItem(ctx, pk, body, nil); err != nil {
		if isStatus(err, http.StatusConflict) {
			return entity.ErrItemAlreadyExists
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// List returns all stored items, newest first. The query spans partitions
// because item fingerprints scatter documents across them.
func (repo *ItemRepo) List(ctx context.Context) ([]*entity.NewsItem, error) {
	const query = "SELECT * FROM c ORDER BY c.fetched_at DESC"

	items := make([]*entity.NewsItem, 0, 100)
	pager := repo.container.NewQueryItemsPager(query, azcosmos.PartitionKey{}, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		for _, raw := range page.Items {
			var doc itemDocument
			if err := json.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("List: unmarshal: %w", err)
			}
			items = append(items, decodeItem(doc))
		}
	}
	return items, nil
}

// isStatus reports whether err is a Cosmos response error with the given
// HTTP status code.
func isStatus(err error, status int) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == status
}
