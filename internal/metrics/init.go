package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	backends := []string{"blob", "drive"}
	kinds := []string{"audio", "video"}
	outcomes := []string{"success", "backend_http_error", "endpoint_unavailable", "invalid_response", "upstream_timeout"}

	// --- Backend requests (per backend × kind × outcome) ---
	for _, backend := range backends {
		for _, kind := range kinds {
			for _, outcome := range outcomes {
				BackendRequestsTotal.WithLabelValues(backend, kind, outcome)
			}
		}
		BackendRequestDuration.WithLabelValues(backend)
		BackendEntriesListed.WithLabelValues(backend)
	}

	// --- Catalog fetches and fallbacks ---
	for _, kind := range kinds {
		for _, source := range []string{"blob", "drive", "none"} {
			CatalogFetchesTotal.WithLabelValues(kind, source)
		}
		for _, reason := range []string{"empty", "fault", "unconfigured"} {
			CatalogFallbacksTotal.WithLabelValues(kind, reason)
		}
		CatalogDegradedTotal.WithLabelValues(kind)
		CatalogFiles.WithLabelValues(kind)
	}

	for _, result := range []string{"hit", "miss", "empty_query"} {
		SearchQueriesTotal.WithLabelValues(result)
	}

	for _, status := range []string{"200", "401", "403", "405", "500"} {
		ProxyListRequestsTotal.WithLabelValues(status)
	}
}
