// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	RoutingOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routing_outcomes_total",
			Help: "Routing decisions by recommendation",
		},
		[]string{"recommendation"},
	)

	MatchScores = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_top_score",
			Help:    "Score of the best service match per matching pass",
			Buckets: []float64{0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
		[]string{"confidence"},
	)

	MatchCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_cache_lookups_total",
			Help: "Match result cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	CatalogPackages = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_packages",
			Help: "Number of service packages per tier in the catalog",
		},
		[]string{"tier"},
	)

	CatalogVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_version",
			Help: "Current catalog version, bumped on every mutation or reload",
		},
	)
)
