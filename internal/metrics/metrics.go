// Package metrics declares the Prometheus metrics exported by the service
// and a collector that periodically publishes index gauges.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "art_reference_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "art_reference_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "art_reference_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Scanner metrics
var (
	ScannerScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "art_reference_scanner_scans_total",
			Help: "Total number of library scans by outcome",
		},
		[]string{"status"},
	)

	ScannerScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "art_reference_scanner_scan_duration_seconds",
			Help:    "Duration of a full library scan in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ScannerFoldersScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "art_reference_scanner_folders_scanned_total",
			Help: "Total number of image set folders recorded by scans",
		},
	)

	ScannerImagesFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "art_reference_scanner_images_found_total",
			Help: "Total number of image files recorded by scans",
		},
	)

	ScannerMetadataFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "art_reference_scanner_metadata_failures_total",
			Help: "Total number of tag metadata files that could not be read or parsed",
		},
	)
)

// Index store metrics
var (
	StoreRebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "art_reference_store_rebuilds_total",
			Help: "Total number of index rebuilds by outcome",
		},
		[]string{"status"},
	)

	StoreLastRebuildTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "art_reference_store_last_rebuild_timestamp",
			Help: "Unix timestamp of the last completed index rebuild",
		},
	)

	StoreLastRebuildDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "art_reference_store_last_rebuild_duration_seconds",
			Help: "Duration of the last index rebuild in seconds",
		},
	)

	StoreExpiredReads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "art_reference_store_expired_reads_total",
			Help: "Total number of snapshot reads that found an expired snapshot",
		},
	)

	IndexImages = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "art_reference_index_images",
			Help: "Number of images in the current index snapshot",
		},
	)

	IndexFolders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "art_reference_index_folders",
			Help: "Number of image set folders in the current index snapshot",
		},
	)

	IndexTags = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "art_reference_index_tags",
			Help: "Number of unique tags in the current index snapshot",
		},
	)
)

// Query metrics
var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "art_reference_queries_total",
			Help: "Total number of query engine calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	QueryResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "art_reference_query_result_size",
			Help:    "Number of records returned per query",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 500, 1000, 5000},
		},
		[]string{"operation"},
	)
)

// Thumbnail metrics
var (
	ThumbnailGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "art_reference_thumbnail_generations_total",
			Help: "Total number of thumbnail generations by outcome",
		},
		[]string{"status"},
	)

	ThumbnailCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "art_reference_thumbnail_cache_hits_total",
			Help: "Total number of thumbnail requests served from the cache",
		},
	)

	ThumbnailGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "art_reference_thumbnail_generation_duration_seconds",
			Help:    "Thumbnail generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)
)
