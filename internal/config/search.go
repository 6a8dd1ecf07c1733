package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SearchConfig holds connection settings for the Tavily search provider.
type SearchConfig struct {
	// APIKey is the Tavily API key. Required.
	APIKey string

	// BaseURL is the API base URL. Default: "https://api.tavily.com".
	BaseURL string

	// Timeout is the per-request HTTP timeout. Default: 30s.
	Timeout time.Duration
}

// LoadSearchConfig loads search provider configuration from environment
// variables.
//
// Environment variables:
//   - TAVILY_API_KEY (required)
//   - TAVILY_BASE_URL (default: "https://api.tavily.com")
//   - TAVILY_TIMEOUT (default: 30s)
func LoadSearchConfig() (*SearchConfig, error) {
	apiKey, err := RequireEnv("TAVILY_API_KEY")
	if err != nil {
		return nil, err
	}
	return &SearchConfig{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(GetEnvOrDefault("TAVILY_BASE_URL", "https://api.tavily.com"), "/"),
		Timeout: GetEnvDuration("TAVILY_TIMEOUT", 30*time.Second),
	}, nil
}

// HarvestQuery describes one search the harvest job runs per invocation.
type HarvestQuery struct {
	Query          string   `yaml:"query"`
	MaxResults     int      `yaml:"max_results"`
	Depth          string   `yaml:"depth"`
	IncludeDomains []string `yaml:"include_domains"`
	TimeRange      string   `yaml:"time_range"`
}

type harvestQueriesFile struct {
	Queries []HarvestQuery `yaml:"queries"`
}

// DefaultHarvestQueries returns the built-in query set used when no queries
// file is configured.
func DefaultHarvestQueries() []HarvestQuery {
	return []HarvestQuery{
		{
			Query:          "OpenAI news",
			MaxResults:     5,
			Depth:          "advanced",
			IncludeDomains: []string{"openai.com"},
			TimeRange:      "month",
		},
	}
}

// LoadHarvestQueries loads the harvest query set from the YAML file named by
// HARVEST_QUERIES_FILE, falling back to DefaultHarvestQueries when the
// variable is unset. A configured but unreadable or empty file is an error
// rather than a silent fallback.
func LoadHarvestQueries() ([]HarvestQuery, error) {
	path := os.Getenv("HARVEST_QUERIES_FILE")
	if path == "" {
		return DefaultHarvestQueries(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read harvest queries file: %w", err)
	}

	var file harvestQueriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse harvest queries file: %w", err)
	}
	if len(file.Queries) == 0 {
		return nil, fmt.Errorf("harvest queries file %s defines no queries", path)
	}

	for i := range file.Queries {
		q := &file.Queries[i]
		if q.Query == "" {
			return nil, fmt.Errorf("harvest query %d has no query string", i)
		}
		if q.MaxResults <= 0 {
			q.MaxResults = 5
		}
		if q.Depth == "" {
			q.Depth = "basic"
		}
	}
	return file.Queries, nil
}
