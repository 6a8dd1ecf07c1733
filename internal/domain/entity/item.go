// Package entity defines the core domain entities and identity logic for the
// application. It contains the fundamental business objects such as NewsItem
// and UserSettings, along with their domain-specific errors.
package entity

import "time"

// CEFRLevels is the fixed ordered set of reading-proficiency tiers a news
// item can be rewritten for. The order is stable and used wherever level
// rewrites are generated or rendered.
var CEFRLevels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

// NewsItem represents a harvested and transformed news item.
//
// ID is the content fingerprint (see Fingerprint) and doubles as the storage
// primary key. An item is created once per fingerprint and never mutated by
// the harvest pipeline afterwards.
type NewsItem struct {
	// ID is the content fingerprint, immutable once created.
	ID string

	// Title is the source-provided headline.
	Title string

	// Content holds the sanitized summary, or the original source text when
	// summarization was skipped or failed.
	Content string

	// URL is the source link, empty when the provider returned none.
	URL string

	// Date is the source-provided publication timestamp, empty when unknown.
	// Kept as the provider's string form rather than parsed, matching the
	// stored document.
	Date string

	// FetchedAt is the ingestion timestamp, set once at creation.
	FetchedAt time.Time

	// Levels maps a lowercased CEFR level ("a1".."c2") to its rewritten
	// text. Levels that failed to generate are absent, never empty strings.
	Levels map[string]string
}

// UserSettings holds a user's per-provider interest flags.
type UserSettings struct {
	UserID    string
	Providers map[string]bool
	UpdatedAt time.Time
}

// Providers is the fixed set of news providers a user can subscribe to.
var Providers = []string{"Google", "OpenAI", "Anthropic", "MistralAI", "Microsoft", "AWS"}
