package library

import "time"

// Image represents a single image file inside an image set. Tags are copied
// from the owning folder at scan time, so later metadata edits never affect
// an already-built snapshot.
type Image struct {
	Name   string   `json:"name"`
	Path   string   `json:"path"`
	URL    string   `json:"url"`
	Folder string   `json:"folder"`
	Tags   []string `json:"tags"`
}

// Folder represents an image set: an immediate subdirectory of the library
// root that contains at least one qualifying image. Folders with zero images
// are never recorded.
type Folder struct {
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	Tags       []string `json:"tags"`
	ImageCount int      `json:"imageCount"`
}

// Snapshot is the paired result of one full scan. It is immutable once
// built; a rebuild produces a fresh Snapshot rather than mutating this one.
type Snapshot struct {
	Images  []Image
	Folders []Folder
	BuiltAt time.Time
}

// ImageExtensions is the allow-list of image file extensions, matched
// case-insensitively against the lowercased extension.
var ImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}
