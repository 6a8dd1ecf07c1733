// Package observability provides the observability infrastructure for the
// service: structured logging and Prometheus metrics.
//
// Subpackages:
//   - logging: structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
package observability
