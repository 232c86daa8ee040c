package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Histogram buckets covering sub-millisecond cache reads up to slow database scans
	CustomAPIBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13}

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Client Metrics (PostgreSQL)
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBOperationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Business Metrics
	TalentSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talentmap_talent_searches_total",
			Help: "Total number of talent directory searches",
		},
		[]string{"filtered"},
	)

	TalentSearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "talentmap_talent_search_results",
			Help:    "Number of talents matching a directory search",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 200, 500},
		},
	)

	TalentProfileViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "talentmap_talent_profile_views_total",
			Help: "Total number of talent profile views",
		},
	)

	SkillAggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "talentmap_skill_aggregation_duration_seconds",
			Help:    "Skill aggregation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"}, // "computed", "cached"
	)

	CollaborationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talentmap_collaboration_requests_total",
			Help: "Total collaboration request creation attempts",
		},
		[]string{"status"},
	)

	CollaborationTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talentmap_collaboration_transitions_total",
			Help: "Total collaboration status transition attempts",
		},
		[]string{"action", "result"},
	)

	// Infrastructure Metrics
	GoRoutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"breaker"},
	)

	HeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}

// ResultLabel maps an error to the "result" label value
func ResultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
