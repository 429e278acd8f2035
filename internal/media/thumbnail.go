package media

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aohmcareer/ArtReferenceAPI/internal/library"
	"github.com/aohmcareer/ArtReferenceAPI/internal/logging"
	"github.com/aohmcareer/ArtReferenceAPI/internal/metrics"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	thumbnailSize    = 200
	thumbnailQuality = 80
)

// ThumbnailGenerator produces and caches JPEG thumbnails for library
// images. Generation is serialized with a mutex; the cache check before the
// lock keeps hits cheap.
type ThumbnailGenerator struct {
	cacheDir string
	enabled  bool
	mu       sync.Mutex
}

// NewThumbnailGenerator creates a generator caching into cacheDir. When
// disabled (cache directory unavailable) every GetThumbnail call fails.
func NewThumbnailGenerator(cacheDir string, enabled bool) *ThumbnailGenerator {
	if enabled {
		logging.Debug("ThumbnailGenerator: enabled, cache dir: %s", cacheDir)
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			logging.Warn("ThumbnailGenerator: failed to create cache dir: %v", err)
		}
	} else {
		logging.Debug("ThumbnailGenerator: disabled")
	}
	return &ThumbnailGenerator{
		cacheDir: cacheDir,
		enabled:  enabled,
	}
}

// IsEnabled reports whether thumbnail generation is available.
func (t *ThumbnailGenerator) IsEnabled() bool {
	return t.enabled
}

// IsSupported reports whether the file's extension is on the library image
// allow-list.
func (t *ThumbnailGenerator) IsSupported(path string) bool {
	return library.ImageExtensions[strings.ToLower(filepath.Ext(path))]
}

// GetThumbnail returns the JPEG thumbnail bytes for the given image file,
// generating and caching them on first request.
func (t *ThumbnailGenerator) GetThumbnail(filePath string) ([]byte, error) {
	if !t.enabled {
		return nil, fmt.Errorf("thumbnails disabled")
	}

	if _, err := os.Stat(filePath); err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("error_not_found").Inc()
		return nil, fmt.Errorf("file not accessible: %w", err)
	}

	if !t.IsSupported(filePath) {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("error_unsupported").Inc()
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filePath))
	}

	hash := md5.Sum([]byte(filePath))
	cachePath := filepath.Join(t.cacheDir, fmt.Sprintf("%x.jpg", hash))

	if data, err := os.ReadFile(cachePath); err == nil {
		logging.Debug("Thumbnail cache hit: %s", filePath)
		metrics.ThumbnailCacheHits.Inc()
		return data, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another request may have generated it while we waited for the lock.
	if data, err := os.ReadFile(cachePath); err == nil {
		metrics.ThumbnailCacheHits.Inc()
		return data, nil
	}

	start := time.Now()
	logging.Debug("Thumbnail generating: %s", filePath)

	img, err := imaging.Open(filePath, imaging.AutoOrientation(true))
	if err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	if err := os.WriteFile(cachePath, buf.Bytes(), 0o644); err != nil {
		logging.Warn("Failed to cache thumbnail %s: %v", cachePath, err)
	}

	metrics.ThumbnailGenerationsTotal.WithLabelValues("success").Inc()
	metrics.ThumbnailGenerationDuration.Observe(time.Since(start).Seconds())

	return buf.Bytes(), nil
}
