package config

import (
	"fmt"
	"strings"
	"time"
)

// Generator backend types selectable via GENERATOR_TYPE.
const (
	GeneratorAzureOpenAI = "azure-openai"
	GeneratorClaude      = "claude"
	GeneratorNone        = "none"
)

// GeneratorConfig holds configuration for the text-generation backend used
// to rewrite harvested news content.
type GeneratorConfig struct {
	// Type selects the backend: "azure-openai", "claude", or "none".
	// With "none" the pipeline runs its degraded path: original text is
	// stored and no level rewrites are generated.
	Type string

	// APIKey is the backend credential. Required unless Type is "none".
	APIKey string

	// Endpoint is the Azure OpenAI resource endpoint. Required for
	// azure-openai.
	Endpoint string

	// APIVersion is the Azure OpenAI API version. Default: "2024-06-01".
	APIVersion string

	// Model is the deployment name (azure-openai) or model id (claude).
	Model string

	// MaxTokens caps the response size per generation call. Default: 1024.
	MaxTokens int

	// Timeout is the maximum duration for a single generation call.
	// Default: 60s.
	Timeout time.Duration

	// RequestsPerSecond throttles generation calls across the whole
	// invocation. Default: 2.
	RequestsPerSecond float64
}

// LoadGeneratorConfig loads generation-backend configuration from
// environment variables.
//
// Environment variables:
//   - GENERATOR_TYPE (default: "azure-openai"; "none" disables generation)
//   - AZURE_OPENAI_API_KEY / ANTHROPIC_API_KEY (required per backend)
//   - AZURE_OPENAI_ENDPOINT (required for azure-openai)
//   - AZURE_OPENAI_API_VERSION (default: "2024-06-01")
//   - AZURE_OPENAI_DEPLOYMENT / CLAUDE_MODEL (model selection)
//   - GENERATOR_MAX_TOKENS (default: 1024)
//   - GENERATOR_TIMEOUT (default: 60s)
//   - GENERATOR_RPS (default: 2)
func LoadGeneratorConfig() (*GeneratorConfig, error) {
	cfg := &GeneratorConfig{
		Type:              GetEnvOrDefault("GENERATOR_TYPE", GeneratorAzureOpenAI),
		APIVersion:        GetEnvOrDefault("AZURE_OPENAI_API_VERSION", "2024-06-01"),
		MaxTokens:         GetEnvInt("GENERATOR_MAX_TOKENS", 1024),
		Timeout:           GetEnvDuration("GENERATOR_TIMEOUT", 60*time.Second),
		RequestsPerSecond: float64(GetEnvInt("GENERATOR_RPS", 2)),
	}

	switch cfg.Type {
	case GeneratorNone:
		return cfg, nil
	case GeneratorAzureOpenAI:
		apiKey, err := RequireEnv("AZURE_OPENAI_API_KEY")
		if err != nil {
			return nil, err
		}
		endpoint, err := RequireEnv("AZURE_OPENAI_ENDPOINT")
		if err != nil {
			return nil, err
		}
		cfg.APIKey = apiKey
		cfg.Endpoint = strings.TrimRight(endpoint, "/")
		cfg.Model = GetEnvOrDefault("AZURE_OPENAI_DEPLOYMENT", "")
	case GeneratorClaude:
		apiKey, err := RequireEnv("ANTHROPIC_API_KEY")
		if err != nil {
			return nil, err
		}
		cfg.APIKey = apiKey
		cfg.Model = GetEnvOrDefault("CLAUDE_MODEL", "")
	default:
		return nil, fmt.Errorf("invalid GENERATOR_TYPE: %s (expected azure-openai, claude, or none)", cfg.Type)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness. A missing model is allowed and
// downgrades the pipeline to its no-generation path, matching the behavior
// of an unset deployment.
func (c *GeneratorConfig) Validate() error {
	if c.Type == GeneratorNone {
		return nil
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got %v", c.RequestsPerSecond)
	}
	return nil
}

// Enabled reports whether generation calls should be issued at all.
func (c *GeneratorConfig) Enabled() bool {
	return c.Type != GeneratorNone && c.Model != ""
}
