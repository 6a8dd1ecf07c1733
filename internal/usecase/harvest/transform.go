package harvest

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"ainews-backend/internal/domain/entity"
	"ainews-backend/internal/observability/metrics"
	"ainews-backend/internal/utils/text"
)

// generateParallelism caps concurrent generation calls per candidate. The
// summary call and the six level calls are independent, so they all run
// through the same bounded group.
const generateParallelism = 3

// transformResult holds the output of the transformation step for one
// candidate: the summary and whichever level rewrites succeeded.
type transformResult struct {
	Summary string
	Levels  map[string]string
}

// transform drives summary and per-level rewrite generation for one
// candidate under the partial-failure policy:
//
//   - Empty source text or no configured generator: the original text is the
//     summary and no levels are produced. Degraded but valid, not a failure.
//   - Summary call failure: fall back to the original source text. Never
//     aborts the item.
//   - Per-level failure: that level is omitted entirely; sibling levels and
//     the summary are unaffected.
//
// Each slot is written by exactly one goroutine, so the only shared mutable
// state is the error counter, which is updated atomically.
func (s *Service) transform(ctx context.Context, id, sourceText string, stats *HarvestStats) transformResult {
	if sourceText == "" || s.Generator == nil {
		return transformResult{Summary: sourceText, Levels: map[string]string{}}
	}

	summary := sourceText
	levelTexts := make([]string, len(entity.CEFRLevels))
	levelOK := make([]bool, len(entity.CEFRLevels))

	var eg errgroup.Group
	eg.SetLimit(generateParallelism)

	eg.Go(func() error {
		system, user := summaryPrompts(sourceText)
		cleaned, err := s.generateOnce(ctx, id, "summary", system, user, stats)
		if err == nil {
			summary = cleaned
		}
		return nil
	})

	for i, level := range entity.CEFRLevels {
		eg.Go(func() error {
			system, user := levelPrompts(level, sourceText)
			cleaned, err := s.generateOnce(ctx, id, strings.ToLower(level), system, user, stats)
			if err == nil {
				levelTexts[i] = cleaned
				levelOK[i] = true
			}
			return nil
		})
	}

	// Goroutines swallow their own failures, so Wait only synchronizes.
	_ = eg.Wait()

	levels := make(map[string]string, len(entity.CEFRLevels))
	for i, level := range entity.CEFRLevels {
		if levelOK[i] {
			levels["content_"+strings.ToLower(level)] = levelTexts[i]
		}
	}
	return transformResult{Summary: summary, Levels: levels}
}

// generateOnce issues a single generation call and sanitizes the output.
// Failures are logged with the fingerprint for correlation and counted; the
// caller decides what omission means for its slot.
func (s *Service) generateOnce(ctx context.Context, id, kind, systemPrompt, userPrompt string, stats *HarvestStats) (string, error) {
	start := time.Now()
	raw, err := s.Generator.Generate(ctx, systemPrompt, userPrompt)
	duration := time.Since(start)

	if err != nil {
		atomic.AddInt64(&stats.GenerationErrors, 1)
		metrics.RecordGenerationCall(kind, false, duration)
		slog.Warn("generation failed, omitting field",
			slog.String("id", id),
			slog.String("kind", kind),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return "", err
	}

	metrics.RecordGenerationCall(kind, true, duration)
	return text.CleanPlainText(raw), nil
}
