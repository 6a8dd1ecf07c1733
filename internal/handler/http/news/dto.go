// Package news provides HTTP handlers for reading harvested news items.
package news

import (
	"time"

	"ainews-backend/internal/domain/entity"
)

// DTO is the JSON shape of a news item. Level rewrites appear as top-level
// fields and are omitted when generation skipped or failed for that level.
type DTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	URL       string    `json:"url"`
	Date      string    `json:"date,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	ContentA1 string    `json:"content_a1,omitempty"`
	ContentA2 string    `json:"content_a2,omitempty"`
	ContentB1 string    `json:"content_b1,omitempty"`
	ContentB2 string    `json:"content_b2,omitempty"`
	ContentC1 string    `json:"content_c1,omitempty"`
	ContentC2 string    `json:"content_c2,omitempty"`
}

func toDTO(item *entity.NewsItem) DTO {
	return DTO{
		ID:        item.ID,
		Title:     item.Title,
		Content:   item.Content,
		URL:       item.URL,
		Date:      item.Date,
		FetchedAt: item.FetchedAt,
		ContentA1: item.Levels["content_a1"],
		ContentA2: item.Levels["content_a2"],
		ContentB1: item.Levels["content_b1"],
		ContentB2: item.Levels["content_b2"],
		ContentC1: item.Levels["content_c1"],
		ContentC2: item.Levels["content_c2"],
	}
}
