// Package harvest implements the periodic ingestion pipeline: fetch candidate
// news results from the search provider, deduplicate against storage, rewrite
// content at multiple reading levels through the generation backend, and
// persist the enriched item exactly once per content fingerprint.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ainews-backend/internal/config"
	"ainews-backend/internal/domain/entity"
	"ainews-backend/internal/observability/metrics"
	"ainews-backend/internal/repository"
)

// SearchRequest describes one call to the search provider.
type SearchRequest struct {
	Query          string
	MaxResults     int
	Depth          string
	IncludeDomains []string
	TimeRange      string
}

// SearchResult is a single candidate returned by the search provider.
// At least one of Title and Content must be non-empty for the candidate to
// be eligible; the pipeline discards the rest before fingerprinting.
type SearchResult struct {
	Title         string
	Content       string
	URL           string
	PublishedDate string
}

// SearchClient fetches candidate results from the external search provider.
type SearchClient interface {
	Search(ctx context.Context, req SearchRequest) ([]SearchResult, error)
}

// Generator issues a single call against the text-generation backend.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Service drives one harvest invocation end to end. It may be invoked
// repeatedly and safely: re-running after a partial prior completion only
// processes the candidates whose create never succeeded.
type Service struct {
	ItemRepo  repository.ItemRepository
	Search    SearchClient
	Generator Generator // nil disables generation entirely

	queries        []config.HarvestQuery
	partitionField string
	partitionValue string
}

// NewService creates a harvest Service.
//
// Parameters:
//   - itemRepo: storage for transformed items
//   - search: search provider client
//   - generator: generation backend, nil to run the degraded no-generation path
//   - queries: the search queries executed per invocation
//   - partitionField: configured logical partition field (e.g. "/id"),
//     normalized internally
//   - partitionValue: constant partition value used when partitionField is
//     not the identity field
func NewService(
	itemRepo repository.ItemRepository,
	search SearchClient,
	generator Generator,
	queries []config.HarvestQuery,
	partitionField string,
	partitionValue string,
) Service {
	return Service{
		ItemRepo:       itemRepo,
		Search:         search,
		Generator:      generator,
		queries:        queries,
		partitionField: NormalizePartitionField(partitionField),
		partitionValue: partitionValue,
	}
}

// HarvestStats contains statistics about one harvest invocation.
type HarvestStats struct {
	Queries          int
	Results          int64
	Discarded        int64
	Duplicated       int64
	Inserted         int64
	Abandoned        int64
	GenerationErrors int64
	Duration         time.Duration
}

// HarvestAll runs one full harvest invocation over all configured queries.
//
// Error handling follows the partial-failure policy:
//   - A search provider failure aborts the invocation (the whole batch for
//     this run) and is returned to the caller.
//   - A storage failure for one candidate abandons that candidate only; the
//     next scheduled invocation retries it naturally because no create
//     succeeded and the dedup gate will not block it.
//   - Generation failures degrade per field inside the transformation step
//     and never abort an item.
func (s *Service) HarvestAll(ctx context.Context) (*HarvestStats, error) {
	logger := slog.Default()
	start := time.Now()
	fetchedAt := start.UTC()
	stats := &HarvestStats{Queries: len(s.queries)}

	for _, query := range s.queries {
		results, err := s.Search.Search(ctx, SearchRequest{
			Query:          query.Query,
			MaxResults:     query.MaxResults,
			Depth:          query.Depth,
			IncludeDomains: query.IncludeDomains,
			TimeRange:      query.TimeRange,
		})
		if err != nil {
			return stats, fmt.Errorf("search %q: %w", query.Query, err)
		}
		metrics.RecordSearchResults(query.Query, len(results))
		logger.Info("search completed",
			slog.String("query", query.Query),
			slog.Int("results", len(results)))

		for _, result := range results {
			stats.Results++
			if err := s.processCandidate(ctx, result, fetchedAt, stats); err != nil {
				return stats, err
			}
		}
	}

	stats.Duration = time.Since(start)
	logger.Info("harvest completed",
		slog.Int("queries", stats.Queries),
		slog.Int64("results", stats.Results),
		slog.Int64("inserted", stats.Inserted),
		slog.Int64("duplicated", stats.Duplicated),
		slog.Int64("discarded", stats.Discarded),
		slog.Int64("abandoned", stats.Abandoned),
		slog.Int64("generation_errors", stats.GenerationErrors),
		slog.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// processCandidate ingests a single search result. It returns an error only
// for context cancellation; all other per-candidate failures are logged,
// counted, and swallowed so the remaining candidates keep flowing.
func (s *Service) processCandidate(ctx context.Context, result SearchResult, fetchedAt time.Time, stats *HarvestStats) error {
	logger := slog.Default()

	if result.Title == "" && result.Content == "" {
		stats.Discarded++
		logger.Debug("discarding candidate without title or content",
			slog.String("url", result.URL))
		return nil
	}

	id, err := entity.Fingerprint(result.Title, result.Content, result.URL)
	if err != nil {
		stats.Discarded++
		logger.Warn("failed to fingerprint candidate", slog.Any("error", err))
		return nil
	}
	pkValue := ResolvePartitionValue(s.partitionField, id, s.partitionValue)

	// Dedup gate: cost avoidance before any generation call. The check is
	// not the correctness mechanism (two overlapping invocations can both
	// pass it); create-fails-on-conflict below is.
	exists, err := s.ItemRepo.Exists(ctx, id, pkValue)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		stats.Abandoned++
		logger.Warn("dedup lookup failed, abandoning candidate",
			slog.String("id", id),
			slog.String("title", result.Title),
			slog.Any("error", err))
		return nil
	}
	if exists {
		stats.Duplicated++
		metrics.RecordItemDuplicated()
		logger.Info("skip existing item",
			slog.String("id", id),
			slog.String("title", result.Title))
		return nil
	}

	sourceText := result.Content
	if sourceText == "" {
		sourceText = result.Title
	}
	transformed := s.transform(ctx, id, sourceText, stats)

	item := &entity.NewsItem{
		ID:        id,
		Title:     result.Title,
		Content:   transformed.Summary,
		URL:       result.URL,
		Date:      result.PublishedDate,
		FetchedAt: fetchedAt,
		Levels:    transformed.Levels,
	}

	if err := s.ItemRepo.Create(ctx, item, pkValue); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		stats.Abandoned++
		if errors.Is(err, entity.ErrItemAlreadyExists) {
			// Lost the dedup-then-create race against a concurrent
			// invocation. Not treated as success, not retried.
			logger.Warn("create conflicted with existing item",
				slog.String("id", id),
				slog.String("title", result.Title))
			return nil
		}
		logger.Warn("failed to store item, abandoning candidate",
			slog.String("id", id),
			slog.String("title", result.Title),
			slog.Any("error", err))
		return nil
	}

	stats.Inserted++
	metrics.RecordItemIngested()
	logger.Info("saved item",
		slog.String("id", id),
		slog.String("title", result.Title),
		slog.Int("levels", len(item.Levels)))
	return nil
}
