package handlers

import (
	"net/http"
	"strconv"

	"github.com/aohmcareer/ArtReferenceAPI/internal/logging"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// GetRandomImage returns a uniformly random image matching the optional
// folder and tags query filters. An empty result set is a 404, not an error.
func (h *Handlers) GetRandomImage(w http.ResponseWriter, r *http.Request) {
	folder := r.URL.Query().Get("folder")
	tags := parseTags(r.URL.Query().Get("tags"))

	img, ok := h.engine.RandomImage(folder, tags)
	if !ok {
		logging.Debug("GetRandomImage: no match for folder=%q tags=%v", folder, tags)
		writeJSONError(w, "No matching images found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, img)
}

// GetImages returns one page of the filtered gallery. Out-of-range page and
// pageSize values are clamped rather than rejected.
func (h *Handlers) GetImages(w http.ResponseWriter, r *http.Request) {
	page := defaultPage
	pageSize := defaultPageSize

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = p
	}
	if ps, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil {
		pageSize = ps
	}

	folder := r.URL.Query().Get("folder")
	tags := parseTags(r.URL.Query().Get("tags"))

	result := h.engine.Images(page, pageSize, folder, tags)

	logging.Debug("GetImages: page=%d pageSize=%d folder=%q tags=%v -> %d of %d",
		result.Page, result.PageSize, folder, tags, len(result.Items), result.TotalCount)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, result)
}
