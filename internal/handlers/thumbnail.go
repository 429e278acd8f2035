package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aohmcareer/ArtReferenceAPI/internal/logging"

	"github.com/gorilla/mux"
)

// GetThumbnail serves a cached JPEG thumbnail for a library image addressed
// by its library-relative path.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	filePath := mux.Vars(r)["path"]

	logging.Debug("Thumbnail requested: %s", filePath)

	if filePath == "" {
		writeJSONError(w, "Path is required", http.StatusBadRequest)
		return
	}

	fullPath := filepath.Join(h.rootPath, filepath.FromSlash(filePath))

	// Security check
	absPath, err := filepath.Abs(fullPath)
	if err != nil || !isSubPath(h.rootPath, absPath) {
		logging.Warn("Thumbnail: path outside library root: %s", filePath)
		writeJSONError(w, "Invalid path", http.StatusBadRequest)
		return
	}

	fileInfo, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			writeJSONError(w, "File not found", http.StatusNotFound)
		} else {
			logging.Error("Thumbnail: failed to stat %s: %v", fullPath, err)
			writeJSONError(w, "Failed to access file", http.StatusInternalServerError)
		}
		return
	}

	if fileInfo.IsDir() {
		writeJSONError(w, "Cannot generate thumbnail for directory", http.StatusBadRequest)
		return
	}

	if !h.thumbGen.IsEnabled() {
		writeJSONError(w, "Thumbnails disabled", http.StatusServiceUnavailable)
		return
	}

	if !h.thumbGen.IsSupported(fullPath) {
		writeJSONError(w, "Unsupported file type", http.StatusBadRequest)
		return
	}

	thumb, err := h.thumbGen.GetThumbnail(fullPath)
	if err != nil {
		logging.Error("Thumbnail: generation failed for %s: %v", filePath, err)
		writeJSONError(w, fmt.Sprintf("Failed to generate thumbnail: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(thumb)
}

func isSubPath(parent, child string) bool {
	parent, _ = filepath.Abs(parent)
	child, _ = filepath.Abs(child)
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !filepath.IsAbs(rel) && !hasDotDotPrefix(rel))
}

func hasDotDotPrefix(rel string) bool {
	return rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)
}
