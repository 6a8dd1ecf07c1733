// Package generator provides text generation backends used by the harvest
// pipeline for summaries and level-adjusted rewrites. It includes adapters
// for Azure OpenAI and Claude (Anthropic) with structured logging and a
// shared client-side rate limiter.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"ainews-backend/internal/config"
	"ainews-backend/internal/utils/text"
)

// AzureOpenAI implements the harvest Generator interface against an Azure
// OpenAI chat completion deployment.
type AzureOpenAI struct {
	client     *openai.Client
	deployment string
	maxTokens  int
	timeout    time.Duration
	limiter    *rate.Limiter
}

// NewAzureOpenAI creates an Azure OpenAI generator from configuration.
// The deployment name doubles as the model identifier in chat requests.
func NewAzureOpenAI(cfg *config.GeneratorConfig) *AzureOpenAI {
	clientConfig := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		clientConfig.APIVersion = cfg.APIVersion
	}

	slog.Info("Initialized Azure OpenAI generator",
		slog.String("deployment", cfg.Model),
		slog.String("api_version", cfg.APIVersion),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &AzureOpenAI{
		client:     openai.NewClientWithConfig(clientConfig),
		deployment: cfg.Model,
		maxTokens:  cfg.MaxTokens,
		timeout:    cfg.Timeout,
		limiter:    newLimiter(cfg.RequestsPerSecond),
	}
}

// Generate produces one chat completion for the given system and user
// prompts. Requests wait on the shared rate limiter before dispatch.
func (g *AzureOpenAI) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}

	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens: g.maxTokens,
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Generation failed",
			slog.String("deployment", g.deployment),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("azure openai api error: %w", err)
	}

	// Safety check to prevent panic on array access.
	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "Azure OpenAI API returned empty response",
			slog.String("deployment", g.deployment),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("azure openai api returned empty response")
	}

	output := resp.Choices[0].Message.Content

	slog.DebugContext(ctx, "Generation completed",
		slog.String("deployment", g.deployment),
		slog.Int("input_length", text.CountRunes(userPrompt)),
		slog.Int("output_length", text.CountRunes(output)),
		slog.Duration("duration", duration))

	return output, nil
}
