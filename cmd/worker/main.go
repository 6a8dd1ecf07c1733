package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"ainews-backend/internal/config"
	hhttp "ainews-backend/internal/handler/http"
	"ainews-backend/internal/handler/http/respond"
	"ainews-backend/internal/infra/adapter/persistence/cosmos"
	"ainews-backend/internal/infra/generator"
	"ainews-backend/internal/infra/search"
	workerPkg "ainews-backend/internal/infra/worker"
	"ainews-backend/internal/observability/logging"
	"ainews-backend/internal/observability/metrics"
	"ainews-backend/internal/usecase/harvest"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := initLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerConfig := workerPkg.LoadConfigFromEnv(logger)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("harvest_timeout", workerConfig.HarvestTimeout),
		slog.Int("health_port", workerConfig.HealthPort),
		slog.Int("metrics_port", workerConfig.MetricsPort))

	svc := setupHarvestService(logger)

	startMetricsServer(ctx, logger, workerConfig.MetricsPort)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	startCronWorker(logger, svc, workerConfig, healthServer)
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// setupHarvestService wires storage, search and generation into the harvest
// pipeline. Any configuration error is fatal; a worker without its
// dependencies has nothing to do.
func setupHarvestService(logger *slog.Logger) harvest.Service {
	cosmosConfig, err := config.LoadCosmosConfig()
	if err != nil {
		logger.Error("failed to load storage configuration", slog.Any("error", err))
		os.Exit(1)
	}

	cosmosClient, err := cosmos.NewClient(cosmosConfig)
	if err != nil {
		logger.Error("failed to connect to storage", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
	itemRepo := cosmos.NewItemRepo(cosmosClient, cosmosConfig.PartitionKeyField)

	searchConfig, err := config.LoadSearchConfig()
	if err != nil {
		logger.Error("failed to load search configuration", slog.Any("error", err))
		os.Exit(1)
	}
	searchClient := search.NewTavilyClient(searchConfig)

	queries, err := config.LoadHarvestQueries()
	if err != nil {
		logger.Error("failed to load harvest queries", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("harvest queries loaded", slog.Int("count", len(queries)))

	gen := createGenerator(logger)

	return harvest.NewService(
		itemRepo,
		searchClient,
		gen,
		queries,
		cosmosConfig.PartitionKeyField,
		cosmosConfig.PartitionValue,
	)
}

// createGenerator creates a generation backend based on GENERATOR_TYPE.
// The "none" type, or a live type with no model configured, runs the
// pipeline without rewrites, storing source text as-is.
func createGenerator(logger *slog.Logger) harvest.Generator {
	cfg, err := config.LoadGeneratorConfig()
	if err != nil {
		logger.Error("failed to load generator configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if !cfg.Enabled() {
		if cfg.Type == config.GeneratorNone {
			logger.Warn("Content generation disabled, items are stored without rewrites")
		} else {
			logger.Warn("No generation model configured, items are stored without rewrites",
				slog.String("type", cfg.Type))
		}
		return nil
	}

	switch cfg.Type {
	case config.GeneratorAzureOpenAI:
		logger.Info("Using Azure OpenAI for content generation",
			slog.String("deployment", cfg.Model))
		return generator.NewAzureOpenAI(cfg)
	case config.GeneratorClaude:
		logger.Info("Using Claude API for content generation",
			slog.String("model", cfg.Model))
		return generator.NewClaude(cfg)
	default:
		logger.Error("Invalid GENERATOR_TYPE",
			slog.String("type", cfg.Type),
			slog.String("expected", "azure-openai, claude or none"))
		os.Exit(1)
		return nil
	}
}

// startMetricsServer exposes the Prometheus registry on its own port.
func startMetricsServer(ctx context.Context, logger *slog.Logger, port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", hhttp.MetricsHandler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("metrics server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}

// startCronWorker schedules the harvest job and blocks forever.
func startCronWorker(logger *slog.Logger, svc harvest.Service, cfg workerPkg.Config, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runHarvestJob(logger, svc, cfg)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	if cfg.RunOnStart {
		go runHarvestJob(logger, svc, cfg)
	}

	select {}
}

// runHarvestJob executes a single harvest with timeout and error handling.
func runHarvestJob(logger *slog.Logger, svc harvest.Service, cfg workerPkg.Config) {
	startTime := time.Now()
	logger.Info("harvest started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HarvestTimeout)
	defer cancel()

	stats, err := svc.HarvestAll(ctx)
	duration := time.Since(startTime)
	metrics.RecordHarvestDuration(duration)

	if err != nil {
		logger.Error("harvest failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordHarvestJob("failure")
		return
	}
	metrics.RecordHarvestJob("success")

	logger.Info("harvest completed",
		slog.Int("queries", stats.Queries),
		slog.Int64("results", stats.Results),
		slog.Int64("discarded", stats.Discarded),
		slog.Int64("duplicated", stats.Duplicated),
		slog.Int64("inserted", stats.Inserted),
		slog.Int64("abandoned", stats.Abandoned),
		slog.Int64("generation_errors", stats.GenerationErrors),
		slog.Duration("duration", stats.Duration),
	)
}
