// Package query implements the read-side operations over an index
// snapshot: random image selection, paginated galleries, folder listings
// and tag enumeration. It never touches the filesystem; every call reads
// exactly one snapshot so its results are internally consistent even when a
// rebuild races concurrently.
package query

import (
	"sort"
	"strings"

	"github.com/aohmcareer/ArtReferenceAPI/internal/library"
	"github.com/aohmcareer/ArtReferenceAPI/internal/metrics"
)

const (
	// MinPageSize and MaxPageSize bound the caller-facing pageSize contract.
	MinPageSize = 1
	MaxPageSize = 100
)

// SnapshotProvider supplies the snapshot a query operates on. *index.Store
// is the production implementation.
type SnapshotProvider interface {
	Snapshot() *library.Snapshot
}

// Engine answers queries against the current index snapshot.
type Engine struct {
	store SnapshotProvider
	rand  Rand
}

// NewEngine creates an Engine using the process-wide random source.
func NewEngine(store SnapshotProvider) *Engine {
	return NewEngineWithRand(store, defaultRand())
}

// NewEngineWithRand creates an Engine with an explicit random source,
// allowing deterministic substitution in tests.
func NewEngineWithRand(store SnapshotProvider, rnd Rand) *Engine {
	return &Engine{store: store, rand: rnd}
}

// Page is one page of a filtered gallery along with pagination metadata.
type Page struct {
	Items      []library.Image `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalCount int             `json:"totalCount"`
	TotalPages int             `json:"totalPages"`
}

// RandomImage returns a uniformly random image matching the optional folder
// and tag filters. The boolean is false when no image qualifies; that is a
// defined absent result, not an error.
func (e *Engine) RandomImage(folder string, tags []string) (*library.Image, bool) {
	eligible := filterImages(e.store.Snapshot().Images, folder, tags)
	if len(eligible) == 0 {
		metrics.QueriesTotal.WithLabelValues("random_image", "empty").Inc()
		return nil, false
	}

	metrics.QueriesTotal.WithLabelValues("random_image", "success").Inc()
	img := eligible[e.rand.Intn(len(eligible))]
	return &img, true
}

// Images returns one page of the filtered gallery. Page is clamped to >= 1
// and pageSize to [MinPageSize, MaxPageSize]; out-of-range requests are
// silently clamped, never rejected. Item order is the snapshot's scan
// order, stable across repeated calls against the same snapshot.
func (e *Engine) Images(page, pageSize int, folder string, tags []string) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	filtered := filterImages(e.store.Snapshot().Images, folder, tags)

	result := Page{
		Items:      []library.Image{},
		Page:       page,
		PageSize:   pageSize,
		TotalCount: len(filtered),
		TotalPages: totalPages(len(filtered), pageSize),
	}

	offset := (page - 1) * pageSize
	if offset < len(filtered) {
		end := offset + pageSize
		if end > len(filtered) {
			end = len(filtered)
		}
		result.Items = filtered[offset:end]
	}

	status := "success"
	if len(result.Items) == 0 {
		status = "empty"
	}
	metrics.QueriesTotal.WithLabelValues("images", status).Inc()
	metrics.QueryResultSize.WithLabelValues("images").Observe(float64(len(result.Items)))

	return result
}

// Folders returns the folder records whose tags overlap the requested set
// (OR semantics, case-insensitive). An empty tag set returns all folders.
func (e *Engine) Folders(tags []string) []library.Folder {
	snap := e.store.Snapshot()

	result := []library.Folder{}
	wanted := lowerSet(tags)
	for _, folder := range snap.Folders {
		if len(wanted) == 0 || hasAnyTag(folder.Tags, wanted) {
			result = append(result, folder)
		}
	}

	status := "success"
	if len(result) == 0 {
		status = "empty"
	}
	metrics.QueriesTotal.WithLabelValues("folders", status).Inc()
	metrics.QueryResultSize.WithLabelValues("folders").Observe(float64(len(result)))

	return result
}

// AllTags returns every tag across all folder records, de-duplicated
// case-insensitively (the casing of the first occurrence in scan order
// wins) and sorted ascending.
func (e *Engine) AllTags() []string {
	snap := e.store.Snapshot()

	seen := make(map[string]string)
	for _, folder := range snap.Folders {
		for _, tag := range folder.Tags {
			key := strings.ToLower(tag)
			if _, ok := seen[key]; !ok {
				seen[key] = tag
			}
		}
	}

	tags := make([]string, 0, len(seen))
	for _, tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	status := "success"
	if len(tags) == 0 {
		status = "empty"
	}
	metrics.QueriesTotal.WithLabelValues("all_tags", status).Inc()
	metrics.QueryResultSize.WithLabelValues("all_tags").Observe(float64(len(tags)))

	return tags
}

// totalPages is ceil(count/pageSize), defined as 0 for pageSize 0 (which is
// unreachable through the public clamping).
func totalPages(count, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// filterImages applies the folder and tag filters: exact case-insensitive
// folder name match, and at-least-one-tag-in-common (OR semantics,
// case-insensitive).
func filterImages(images []library.Image, folder string, tags []string) []library.Image {
	if folder == "" && len(tags) == 0 {
		return images
	}

	wanted := lowerSet(tags)

	var filtered []library.Image
	for _, img := range images {
		if folder != "" && !strings.EqualFold(img.Folder, folder) {
			continue
		}
		if len(wanted) > 0 && !hasAnyTag(img.Tags, wanted) {
			continue
		}
		filtered = append(filtered, img)
	}
	return filtered
}

func lowerSet(tags []string) map[string]bool {
	if len(tags) == 0 {
		return nil
	}
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		set[strings.ToLower(tag)] = true
	}
	return set
}

func hasAnyTag(tags []string, wanted map[string]bool) bool {
	for _, tag := range tags {
		if wanted[strings.ToLower(tag)] {
			return true
		}
	}
	return false
}
