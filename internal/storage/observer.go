package storage

// Observer records storage backend metrics. The implementation is provided
// by the metrics package to break the import cycle between storage and metrics.
type Observer interface {
	// ObserveList records one list call. backend is "blob" or "drive", kind is
	// the requested media kind and entries is only meaningful when err is nil.
	ObserveList(backend, kind string, durationSeconds float64, entries int, err error)
}

// defaultObserver is the package-level observer set at startup.
// If nil, metric recording is silently skipped (safe for tests).
var defaultObserver Observer

// SetObserver sets the package-level metrics observer.
// Call this once at startup after creating the observer implementation.
func SetObserver(o Observer) {
	defaultObserver = o
}

func observe(backend, kind string, durationSeconds float64, entries int, err error) {
	if defaultObserver != nil {
		defaultObserver.ObserveList(backend, kind, durationSeconds, entries, err)
	}
}
