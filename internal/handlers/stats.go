package handlers

import (
	"net/http"

	"github.com/aohmcareer/ArtReferenceAPI/internal/logging"
)

// GetStats reports on the currently stored snapshot without triggering a
// rebuild.
func (h *Handlers) GetStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.store.Stats())
}

// TriggerReindex starts a rebuild in the background and returns immediately.
// Rebuilds are mutually exclusive; a concurrent trigger simply queues behind
// the one in flight.
func (h *Handlers) TriggerReindex(w http.ResponseWriter, _ *http.Request) {
	go func() {
		if err := h.store.Rebuild(); err != nil {
			logging.Error("Triggered reindex failed: %v", err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]string{
		"status":  "started",
		"message": "Re-indexing started",
	})
}
