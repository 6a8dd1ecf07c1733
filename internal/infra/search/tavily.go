// Package search provides the Tavily client used to fetch candidate news
// results for the harvest pipeline.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ainews-backend/internal/config"
	"ainews-backend/internal/resilience/circuitbreaker"
	"ainews-backend/internal/usecase/harvest"
)

// TavilyClient calls the Tavily search REST API. All requests flow through a
// circuit breaker so a dead provider is not hammered across invocations.
type TavilyClient struct {
	apiKey         string
	baseURL        string
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewTavilyClient creates a TavilyClient from configuration.
func NewTavilyClient(cfg *config.SearchConfig) *TavilyClient {
	return &TavilyClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		circuitBreaker: circuitbreaker.New(circuitbreaker.SearchAPIConfig()),
	}
}

// searchPayload is the request body for POST /search.
type searchPayload struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeAnswer  bool     `json:"include_answer"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	TimeRange      string   `json:"time_range,omitempty"`
}

// searchResponse is the subset of the Tavily response the pipeline consumes.
type searchResponse struct {
	Results []struct {
		Title         string `json:"title"`
		Content       string `json:"content"`
		URL           string `json:"url"`
		PublishedDate string `json:"published_date"`
	} `json:"results"`
}

// Search implements harvest.SearchClient. It returns the provider's results
// in relevance order; transport and non-2xx responses surface as errors so
// the caller can abort the batch for this invocation.
func (c *TavilyClient) Search(ctx context.Context, req harvest.SearchRequest) ([]harvest.SearchResult, error) {
	depth := req.Depth
	if depth == "" {
		depth = "basic"
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	payload := searchPayload{
		APIKey:         c.apiKey,
		Query:          req.Query,
		SearchDepth:    depth,
		MaxResults:     maxResults,
		IncludeDomains: req.IncludeDomains,
		TimeRange:      req.TimeRange,
	}

	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doSearch(ctx, payload)
	})
	if err != nil {
		return nil, err
	}
	return result.([]harvest.SearchResult), nil
}

// doSearch performs the actual HTTP round-trip without breaker protection.
func (c *TavilyClient) doSearch(ctx context.Context, payload searchPayload) ([]harvest.SearchResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal search payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tavily search request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close search response body", slog.Any("error", err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a bounded amount for the log; the provider's error bodies
		// are small JSON documents.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Warn("tavily search returned non-success status",
			slog.Int("status", resp.StatusCode),
			slog.String("query", payload.Query),
			slog.String("body", string(snippet)),
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("tavily search: unexpected status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]harvest.SearchResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		results = append(results, harvest.SearchResult{
			Title:         r.Title,
			Content:       r.Content,
			URL:           r.URL,
			PublishedDate: r.PublishedDate,
		})
	}

	slog.Debug("tavily search completed",
		slog.String("query", payload.Query),
		slog.Int("results", len(results)),
		slog.Duration("duration", time.Since(start)))
	return results, nil
}
