package handlers

import (
	"net/http"
	"runtime"
	"time"

	"media-catalog/internal/catalog"
	"media-catalog/internal/startup"
)

const (
	statusHealthy      = "healthy"
	statusUnconfigured = "unconfigured"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string               `json:"status"`
	Ready   bool                 `json:"ready"`
	Version string               `json:"version"`
	Uptime  string               `json:"uptime"`
	Storage []catalog.TierStatus `json:"storage"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck reports which storage tiers are configured. It does not call
// the backends; a configured tier may still be down.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	ready := h.catalog.Configured()

	response := HealthResponse{
		Status:       statusHealthy,
		Ready:        ready,
		Version:      startup.Version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		Storage:      h.catalog.Status(),
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}
	if !ready {
		response.Status = statusUnconfigured
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 only when at least one storage tier is configured
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	if h.catalog.Configured() {
		writeJSONStatus(w, "ready", http.StatusOK)
		return
	}
	writeJSONStatus(w, "not_ready", http.StatusServiceUnavailable)
}
