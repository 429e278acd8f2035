package handlers

import (
	"net/http"
)

// GetAllTags returns every tag in the library, de-duplicated
// case-insensitively and sorted.
func (h *Handlers) GetAllTags(w http.ResponseWriter, _ *http.Request) {
	tags := h.engine.AllTags()

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, tags)
}
