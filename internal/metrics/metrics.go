package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_catalog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Storage backend metrics
var (
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_backend_requests_total",
			Help: "Total number of storage backend list requests by outcome",
		},
		[]string{"backend", "kind", "outcome"}, // outcome: "success" or a fault kind
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_catalog_backend_request_duration_seconds",
			Help:    "Storage backend list request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"backend"},
	)

	BackendEntriesListed = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_catalog_backend_entries_listed",
			Help:    "Number of entries returned by a storage backend list request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"backend"},
	)
)

// Catalog metrics
var (
	CatalogFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_fetches_total",
			Help: "Total number of catalog fetches by kind and serving tier",
		},
		[]string{"kind", "source"}, // source: "blob", "drive", "none"
	)

	CatalogFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_fallbacks_total",
			Help: "Total number of times the primary tier was skipped in favour of the secondary",
		},
		[]string{"kind", "reason"}, // reason: "empty", "fault", "unconfigured"
	)

	CatalogDegradedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_degraded_total",
			Help: "Total number of catalog fetches that returned nothing because every tier failed",
		},
		[]string{"kind"},
	)

	CatalogFiles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_catalog_files",
			Help: "Number of files returned by the most recent fetch of each kind",
		},
		[]string{"kind"},
	)

	SearchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_search_queries_total",
			Help: "Total number of search queries by result",
		},
		[]string{"result"}, // "hit", "miss", "empty_query"
	)
)

// Blob proxy metrics
var (
	ProxyListRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_proxy_list_requests_total",
			Help: "Total number of blob-list proxy requests by HTTP status",
		},
		[]string{"status"},
	)

	ProxyObjectsListed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_catalog_proxy_objects_listed_total",
			Help: "Total number of bucket objects returned by the blob-list proxy",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_catalog_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
