package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ainews-backend/internal/config"
	hhttp "ainews-backend/internal/handler/http"
	"ainews-backend/internal/handler/http/auth"
	"ainews-backend/internal/handler/http/respond"
	"ainews-backend/internal/infra/adapter/persistence/cosmos"
	"ainews-backend/internal/observability/logging"
	newsUC "ainews-backend/internal/usecase/news"
	settingsUC "ainews-backend/internal/usecase/settings"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := initLogger()
	version := getVersion()

	handler := setupServer(logger, version)

	runServer(logger, handler, version)
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from the environment, falling
// back to "dev" for local builds.
func getVersion() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	return "dev"
}

// setupServer wires storage, auth and use cases into the router.
func setupServer(logger *slog.Logger, version string) http.Handler {
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

	authConfig, err := config.LoadAuthConfig()
	if err != nil {
		logger.Error("failed to load auth configuration", slog.Any("error", err))
		os.Exit(1)
	}
	verifier := auth.NewVerifier(authConfig)
	logger.Info("bearer authentication enabled",
		slog.String("jwks_url", authConfig.JWKSURL),
		slog.Duration("cache_ttl", authConfig.CacheTTL))

	itemRepo := cosmos.NewItemRepo(cosmosClient, cosmosConfig.PartitionKeyField)
	settingsRepo := cosmos.NewSettingsRepo(cosmosClient)

	return hhttp.NewRouter(hhttp.RouterConfig{
		NewsService:     newsUC.Service{Repo: itemRepo},
		SettingsService: settingsUC.Service{Repo: settingsRepo},
		Verifier:        verifier,
		Storage:         cosmosClient,
		Logger:          logger,
		Version:         version,
	})
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":" + config.GetEnvOrDefault("API_PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
