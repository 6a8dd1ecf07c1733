// Package metrics provides centralized Prometheus metrics for the
// application: HTTP request metrics for the API surface and business metrics
// for the harvest pipeline (search batches, generation calls, item inserts).
// All metrics register with the Prometheus default registry and are exposed
// on the worker's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track API request patterns and performance.
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Harvest metrics track the ingestion pipeline.
var (
	// HarvestJobsTotal counts harvest job runs by outcome.
	HarvestJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvest_jobs_total",
			Help: "Total number of harvest job runs",
		},
		[]string{"status"},
	)

	// HarvestJobDuration measures end-to-end harvest job duration.
	HarvestJobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "harvest_job_duration_seconds",
			Help:    "Harvest job duration in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// SearchResultsTotal counts candidate results returned by the search
	// provider, per query.
	SearchResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_results_total",
			Help: "Total number of search results returned by the provider",
		},
		[]string{"query"},
	)

	// ItemsIngestedTotal counts new items persisted by the pipeline.
	ItemsIngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "items_ingested_total",
			Help: "Total number of news items created in storage",
		},
	)

	// ItemsDuplicatedTotal counts candidates skipped by the dedup gate.
	ItemsDuplicatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "items_duplicated_total",
			Help: "Total number of candidates skipped as already ingested",
		},
	)

	// GenerationCallsTotal counts generation backend calls by kind
	// ("summary" or a CEFR level) and status.
	GenerationCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_calls_total",
			Help: "Total number of generation backend calls",
		},
		[]string{"kind", "status"},
	)

	// GenerationDuration measures single generation call duration.
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "Generation call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)
)
