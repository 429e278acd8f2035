package library

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aohmcareer/ArtReferenceAPI/internal/logging"
	"github.com/aohmcareer/ArtReferenceAPI/internal/metrics"
	"github.com/aohmcareer/ArtReferenceAPI/internal/workers"
)

// Scanner builds library snapshots from the filesystem. It is the only
// component that performs filesystem I/O; everything downstream operates on
// the Snapshot it produces.
type Scanner struct {
	rootPath      string
	baseServePath string
	workers       int
}

// NewScanner creates a Scanner for the given library root. Image URLs are
// produced by joining baseServePath with each image's relative path using
// forward slashes regardless of host path conventions.
func NewScanner(rootPath, baseServePath string) *Scanner {
	return &Scanner{
		rootPath:      rootPath,
		baseServePath: baseServePath,
		workers:       workers.ForIO(16),
	}
}

// SetWorkers overrides the size of the folder scan worker pool.
func (s *Scanner) SetWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

// Scan enumerates the immediate subdirectories of the root as image sets and
// returns a complete Snapshot. A missing or unset root yields an empty
// snapshot and a nil error (logged as a warning); any other error reading
// the root is a scan-wide failure and yields an empty snapshot plus the
// error. Per-folder read errors are absorbed: the folder is skipped and the
// rest of the scan continues.
func (s *Scanner) Scan() (*Snapshot, error) {
	start := time.Now()
	snap := &Snapshot{BuiltAt: start}

	status := "success"
	defer func() {
		metrics.ScannerScansTotal.WithLabelValues(status).Inc()
		metrics.ScannerScanDuration.Observe(time.Since(start).Seconds())
	}()

	if s.rootPath == "" {
		logging.Warn("Library root path is not configured, index will be empty")
		status = "empty_root"
		return snap, nil
	}

	entries, err := os.ReadDir(s.rootPath)
	if os.IsNotExist(err) {
		logging.Warn("Library root %s does not exist, index will be empty", s.rootPath)
		status = "empty_root"
		return snap, nil
	}
	if err != nil {
		status = "error"
		return snap, fmt.Errorf("failed to read library root %s: %w", s.rootPath, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}

	results := s.scanFolders(names)

	// Reassemble in enumeration order so scan order is deterministic for a
	// given filesystem state.
	for _, res := range results {
		if res == nil {
			continue
		}
		snap.Folders = append(snap.Folders, res.folder)
		snap.Images = append(snap.Images, res.images...)
	}

	metrics.ScannerFoldersScanned.Add(float64(len(snap.Folders)))
	metrics.ScannerImagesFound.Add(float64(len(snap.Images)))

	logging.Info("Scan complete: %d images in %d folders in %v",
		len(snap.Images), len(snap.Folders), time.Since(start))

	return snap, nil
}

// folderResult holds the records produced for one image set.
type folderResult struct {
	folder Folder
	images []Image
}

// scanFolders scans each named folder on a worker pool. The returned slice
// is indexed like names; entries are nil for folders that were skipped.
func (s *Scanner) scanFolders(names []string) []*folderResult {
	results := make([]*folderResult, len(names))
	if len(names) == 0 {
		return results
	}

	numWorkers := s.workers
	if numWorkers > len(names) {
		numWorkers = len(names)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.scanFolder(names[i])
			}
		}()
	}

	for i := range names {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// scanFolder builds the records for a single image set. It returns nil when
// the folder cannot be read or contains no qualifying images.
func (s *Scanner) scanFolder(name string) *folderResult {
	dirPath := filepath.Join(s.rootPath, name)

	tags := ReadFolderTags(dirPath)

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		logging.Warn("Skipping folder %s: %v", name, err)
		return nil
	}

	var images []Image
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !ImageExtensions[ext] {
			continue
		}

		relPath := path.Join(name, entry.Name())
		images = append(images, Image{
			Name:   entry.Name(),
			Path:   relPath,
			URL:    path.Join("/", s.baseServePath, relPath),
			Folder: name,
			Tags:   copyTags(tags),
		})
	}

	if len(images) == 0 {
		return nil
	}

	return &folderResult{
		folder: Folder{
			Name:       name,
			Path:       name,
			Tags:       tags,
			ImageCount: len(images),
		},
		images: images,
	}
}

// copyTags returns an independent copy so image records never alias the
// folder's tag slice.
func copyTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
