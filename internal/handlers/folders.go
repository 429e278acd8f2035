package handlers

import (
	"net/http"
)

// GetFolders returns all image sets, optionally filtered to those whose tags
// overlap the requested set.
func (h *Handlers) GetFolders(w http.ResponseWriter, r *http.Request) {
	tags := parseTags(r.URL.Query().Get("tags"))

	folders := h.engine.Folders(tags)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, folders)
}
