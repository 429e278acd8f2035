package metrics

import (
	"time"

	"github.com/aohmcareer/ArtReferenceAPI/internal/logging"
)

// StatsProvider supplies index statistics for the gauge collector.
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the index statistics published as gauges.
type Stats struct {
	TotalImages  int
	TotalFolders int
	TotalTags    int
}

// Collector periodically reads index statistics and updates the
// corresponding Prometheus gauges.
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a collector that polls provider at the given interval.
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the collection loop.
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the collection loop.
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	IndexImages.Set(float64(stats.TotalImages))
	IndexFolders.Set(float64(stats.TotalFolders))
	IndexTags.Set(float64(stats.TotalTags))

	logging.Debug("Metrics collected: images=%d, folders=%d, tags=%d",
		stats.TotalImages, stats.TotalFolders, stats.TotalTags)
}
