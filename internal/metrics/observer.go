package metrics

import "media-catalog/internal/storage"

// storageObserver implements storage.Observer using the Prometheus
// metrics declared in this package.
type storageObserver struct{}

// NewStorageObserver creates an observer that records storage backend metrics
// into the Prometheus counters and histograms declared in metrics.go.
func NewStorageObserver() storage.Observer {
	return &storageObserver{}
}

func (o *storageObserver) ObserveList(backend, kind string, durationSeconds float64, entries int, err error) {
	BackendRequestDuration.WithLabelValues(backend).Observe(durationSeconds)
	BackendRequestsTotal.WithLabelValues(backend, kind, storage.Outcome(err)).Inc()
	if err == nil {
		BackendEntriesListed.WithLabelValues(backend).Observe(float64(entries))
	}
}
