// Package metrics provides Prometheus instrumentation for the media-catalog application.
//
// All metrics are prefixed with "media_catalog_" and registered with the
// default registry through promauto. Mount promhttp.Handler() to expose them:
//
//	mux.Handle("/metrics", promhttp.Handler())
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Storage Backend Metrics
//
// Recorded through the [storage.Observer] returned by NewStorageObserver:
//   - BackendRequestsTotal: Counter by backend (blob/drive), kind, and outcome
//     (success or the fault kind)
//   - BackendRequestDuration: Histogram of list call duration by backend
//   - BackendEntriesListed: Histogram of entries returned by successful calls
//
// ## Catalog Metrics
//
//   - CatalogFetchesTotal: Counter by kind and the tier that served it
//   - CatalogFallbacksTotal: Counter of tier-1 skips by reason
//     (empty, fault, unconfigured)
//   - CatalogDegradedTotal: Counter of fetches where every tier failed
//   - CatalogFiles: Gauge of files in the latest fetch per kind
//   - SearchQueriesTotal: Counter of searches by result (hit/miss/empty_query)
//
// ## Blob Proxy Metrics
//
//   - ProxyListRequestsTotal: Counter of proxy requests by status
//   - ProxyObjectsListed: Counter of bucket objects returned
//
// # Prometheus Queries
//
// Share of fetches served by the fallback tier:
//
//	sum(rate(media_catalog_fetches_total{source="drive"}[1h])) /
//	sum(rate(media_catalog_fetches_total[1h]))
//
// Backend fault rate:
//
//	sum(rate(media_catalog_backend_requests_total{outcome!="success"}[5m])) by (backend, outcome)
package metrics
