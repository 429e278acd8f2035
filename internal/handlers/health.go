package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/aohmcareer/ArtReferenceAPI/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusStarting = "starting"
)

var serviceStart = time.Now()

// HealthResponse contains the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Ready     bool   `json:"ready"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	LastBuilt string `json:"lastBuilt,omitempty"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`

	// Index summary
	TotalImages  int `json:"totalImages"`
	TotalFolders int `json:"totalFolders"`
	TotalTags    int `json:"totalTags"`
}

// HealthCheck returns the health status of the service. The service is
// considered ready once an index snapshot exists, even an empty one.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	stats := h.store.Stats()

	response := HealthResponse{
		Ready:        stats.HasSnapshot,
		Version:      startup.Version,
		Uptime:       time.Since(serviceStart).Round(time.Second).String(),
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
		TotalImages:  stats.TotalImages,
		TotalFolders: stats.TotalFolders,
		TotalTags:    stats.TotalTags,
	}

	if stats.HasSnapshot {
		response.Status = statusHealthy
		response.LastBuilt = stats.BuiltAt.Format(time.RFC3339)
	} else {
		response.Status = statusStarting
	}

	w.Header().Set("Content-Type", "application/json")

	if !stats.HasSnapshot {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

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

// ReadinessCheck returns 200 only once an index snapshot has been published
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if h.store.Stats().HasSnapshot {
		w.WriteHeader(http.StatusOK)
		writeJSON(w, map[string]string{
			"status": "ready",
		})
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{
			"status": "not_ready",
		})
	}
}
