// Package handlers implements the HTTP API: random image selection,
// paginated galleries, folder and tag listings, thumbnails, index stats and
// reindex triggers, plus health and version endpoints.
package handlers
