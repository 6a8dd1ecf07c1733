package cosmos

import (
	"strings"
	"time"

	"ainews-backend/internal/domain/entity"
)

// itemDocument is the stored shape of a news item. Level rewrites are kept
// as top-level fields (content_a1 .. content_c2) so read queries can project
// them without unpacking a nested object; absent levels are omitted.
type itemDocument map[string]any

// encodeItem flattens a NewsItem into its document form. Optional fields
// with no value are left out of the document rather than stored as empty
// strings. When the container is partitioned by a field other than id, that
// field is written with the given partition value so the document lands in
// the right partition.
func encodeItem(item *entity.NewsItem, partitionField, partitionValue string) itemDocument {
	doc := itemDocument{
		"id":         item.ID,
		"title":      item.Title,
		"content":    item.Content,
		"fetched_at": item.FetchedAt.UTC().Format(time.RFC3339),
	}
	if item.URL != "" {
		doc["url"] = item.URL
	}
	if item.Date != "" {
		doc["date"] = item.Date
	}
	for key, text := range item.Levels {
		doc[key] = text
	}
	if partitionField != "" && partitionField != "id" {
		doc[partitionField] = partitionValue
	}
	return doc
}

// decodeItem rebuilds a NewsItem from its document form. Unknown fields are
// ignored; a malformed fetched_at leaves the zero time rather than failing
// the whole read.
func decodeItem(doc itemDocument) *entity.NewsItem {
	item := &entity.NewsItem{
		ID:      stringField(doc, "id"),
		Title:   stringField(doc, "title"),
		Content: stringField(doc, "content"),
		URL:     stringField(doc, "url"),
		Date:    stringField(doc, "date"),
		Levels:  make(map[string]string),
	}
	if raw := stringField(doc, "fetched_at"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			item.FetchedAt = ts
		}
	}
	for _, level := range entity.CEFRLevels {
		key := levelKey(level)
		if text := stringField(doc, key); text != "" {
			item.Levels[key] = text
		}
	}
	return item
}

// settingsDocument is the stored shape of per-user settings. The document
// id is the user id, which is also the partition key of the users container.
type settingsDocument struct {
	ID        string          `json:"id"`
	Providers map[string]bool `json:"providers"`
	UpdatedAt string          `json:"updated_at,omitempty"`
}

func encodeSettings(settings *entity.UserSettings) settingsDocument {
	return settingsDocument{
		ID:        settings.UserID,
		Providers: settings.Providers,
		UpdatedAt: settings.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func decodeSettings(doc settingsDocument) *entity.UserSettings {
	settings := &entity.UserSettings{
		UserID:    doc.ID,
		Providers: doc.Providers,
	}
	if settings.Providers == nil {
		settings.Providers = make(map[string]bool)
	}
	if doc.UpdatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, doc.UpdatedAt); err == nil {
			settings.UpdatedAt = ts
		}
	}
	return settings
}

func stringField(doc itemDocument, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func levelKey(level string) string {
	return "content_" + strings.ToLower(level)
}
