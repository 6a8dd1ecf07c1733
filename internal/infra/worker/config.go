// Package worker provides scheduling configuration and the health endpoint
// server for the harvest worker process.
package worker

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// Config controls the harvest worker's schedule and operational limits.
type Config struct {
	// CronSchedule is the cron expression for the harvest job.
	// Format: "minute hour day month weekday".
	CronSchedule string

	// Timezone is the IANA timezone name the schedule is evaluated in.
	Timezone string

	// HarvestTimeout is the maximum duration for a single harvest run.
	// The run is cancelled when it elapses.
	HarvestTimeout time.Duration

	// HealthPort is the port for the health check HTTP server.
	HealthPort int

	// MetricsPort is the port for the Prometheus metrics HTTP server.
	MetricsPort int

	// RunOnStart triggers one harvest immediately at startup in addition
	// to the schedule. Useful in development.
	RunOnStart bool
}

// DefaultConfig returns a Config with production defaults: one harvest per
// day shortly after midnight UTC, 15 minute timeout.
func DefaultConfig() Config {
	return Config{
		CronSchedule:   "0 0 * * *",
		Timezone:       "UTC",
		HarvestTimeout: 15 * time.Minute,
		HealthPort:     9091,
		MetricsPort:    9090,
		RunOnStart:     false,
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
		return fmt.Errorf("cron schedule %q: %w", c.CronSchedule, err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	if c.HarvestTimeout <= 0 {
		return fmt.Errorf("harvest timeout must be positive, got %v", c.HarvestTimeout)
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		return fmt.Errorf("health port out of range: %d", c.HealthPort)
	}
	if c.MetricsPort < 1024 || c.MetricsPort > 65535 {
		return fmt.Errorf("metrics port out of range: %d", c.MetricsPort)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables.
// Invalid values fall back to defaults with a warning rather than failing;
// a worker with a default schedule beats a worker that never starts.
//
// Environment variables:
//   - CRON_SCHEDULE: cron expression (default "0 0 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default "UTC")
//   - HARVEST_TIMEOUT: duration string, e.g. "15m"
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default 9091)
//   - WORKER_METRICS_PORT: integer 1024-65535 (default 9090)
//   - HARVEST_RUN_ON_START: "true" to harvest once at startup
func LoadConfigFromEnv(logger *slog.Logger) Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		if _, err := cron.ParseStandard(v); err != nil {
			logger.Warn("Invalid CRON_SCHEDULE, using default",
				slog.String("value", v),
				slog.String("default", cfg.CronSchedule),
				slog.String("error", err.Error()))
		} else {
			cfg.CronSchedule = v
		}
	}

	if v := os.Getenv("WORKER_TIMEZONE"); v != "" {
		if _, err := time.LoadLocation(v); err != nil {
			logger.Warn("Invalid WORKER_TIMEZONE, using default",
				slog.String("value", v),
				slog.String("default", cfg.Timezone),
				slog.String("error", err.Error()))
		} else {
			cfg.Timezone = v
		}
	}

	if v := os.Getenv("HARVEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			logger.Warn("Invalid HARVEST_TIMEOUT, using default",
				slog.String("value", v),
				slog.Duration("default", cfg.HarvestTimeout))
		} else {
			cfg.HarvestTimeout = d
		}
	}

	cfg.HealthPort = loadPort(logger, "WORKER_HEALTH_PORT", cfg.HealthPort)
	cfg.MetricsPort = loadPort(logger, "WORKER_METRICS_PORT", cfg.MetricsPort)

	if v := os.Getenv("HARVEST_RUN_ON_START"); v != "" {
		cfg.RunOnStart = v == "true" || v == "1"
	}

	return cfg
}

func loadPort(logger *slog.Logger, key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	port, err := strconv.Atoi(v)
	if err != nil || port < 1024 || port > 65535 {
		logger.Warn("Invalid port, using default",
			slog.String("key", key),
			slog.String("value", v),
			slog.Int("default", fallback))
		return fallback
	}
	return port
}
