package metrics

// InitializeMetrics pre-populates expected label combinations so that every
// metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, status := range []string{"success", "empty_root", "error"} {
		ScannerScansTotal.WithLabelValues(status)
	}

	for _, status := range []string{"success", "error"} {
		StoreRebuildsTotal.WithLabelValues(status)
	}

	for _, op := range []string{"random_image", "images", "folders", "all_tags"} {
		QueriesTotal.WithLabelValues(op, "success")
		QueriesTotal.WithLabelValues(op, "empty")
		QueryResultSize.WithLabelValues(op)
	}

	for _, status := range []string{"success", "error", "error_not_found", "error_unsupported"} {
		ThumbnailGenerationsTotal.WithLabelValues(status)
	}
}
