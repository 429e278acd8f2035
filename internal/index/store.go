// Package index owns the in-memory library index: one immutable snapshot
// published atomically, rebuilt wholesale when it expires or on demand.
package index

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aohmcareer/ArtReferenceAPI/internal/library"
	"github.com/aohmcareer/ArtReferenceAPI/internal/logging"
	"github.com/aohmcareer/ArtReferenceAPI/internal/metrics"
)

// DefaultTTL is the snapshot lifetime when none is configured.
const DefaultTTL = time.Hour

// Rebuilder produces a fresh snapshot of the library. *library.Scanner is
// the production implementation.
type Rebuilder interface {
	Scan() (*library.Snapshot, error)
}

// cached pairs a snapshot with its expiry so both are swapped in a single
// atomic store. Readers never observe a snapshot without its expiry.
type cached struct {
	snap    *library.Snapshot
	expires time.Time
	buildMS int64
}

// Store holds the current snapshot behind an atomic pointer. Reads of a
// fresh snapshot take no locks; rebuilds are mutually exclusive.
type Store struct {
	scanner Rebuilder
	ttl     time.Duration

	rebuildMu sync.Mutex
	current   atomic.Pointer[cached]

	// Overridable for expiry tests.
	now func() time.Time
}

// New creates a Store over the given rebuilder. A non-positive ttl falls
// back to DefaultTTL. No scan happens until Rebuild or the first Snapshot
// call.
func New(scanner Rebuilder, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		scanner: scanner,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Snapshot returns the current snapshot, rebuilding synchronously when none
// exists yet or the stored one has expired. Expiry is checked lazily on
// read; there is no background timer. The returned snapshot is always
// complete, never partially populated.
func (s *Store) Snapshot() *library.Snapshot {
	if c := s.current.Load(); c != nil {
		if s.now().Before(c.expires) {
			return c.snap
		}
		metrics.StoreExpiredReads.Inc()
		logging.Debug("Index snapshot expired, rebuilding")
	}

	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	// Another caller may have rebuilt while we waited for the lock.
	if c := s.current.Load(); c != nil && s.now().Before(c.expires) {
		return c.snap
	}

	s.rebuildLocked()
	return s.current.Load().snap
}

// Rebuild runs a full rescan and atomically replaces the stored snapshot.
// It is idempotent and safe to invoke repeatedly; at most one rebuild runs
// at a time. On a scan-wide failure the index is cleared to an empty
// snapshot and the error is returned.
func (s *Store) Rebuild() error {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()
	return s.rebuildLocked()
}

func (s *Store) rebuildLocked() error {
	start := s.now()

	snap, err := s.scanner.Scan()
	if err != nil {
		// Failed rebuilds clear prior data rather than preserving the last
		// good snapshot; queries degrade to empty results.
		logging.Error("Index rebuild failed, clearing index: %v", err)
		metrics.StoreRebuildsTotal.WithLabelValues("error").Inc()
		s.publish(&library.Snapshot{BuiltAt: start}, start)
		return err
	}

	s.publish(snap, start)
	metrics.StoreRebuildsTotal.WithLabelValues("success").Inc()
	metrics.StoreLastRebuildTimestamp.Set(float64(s.now().Unix()))
	metrics.StoreLastRebuildDuration.Set(s.now().Sub(start).Seconds())

	logging.Info("Index rebuilt: %d images, %d folders (valid for %v)",
		len(snap.Images), len(snap.Folders), s.ttl)

	return nil
}

func (s *Store) publish(snap *library.Snapshot, start time.Time) {
	s.current.Store(&cached{
		snap:    snap,
		expires: s.now().Add(s.ttl),
		buildMS: s.now().Sub(start).Milliseconds(),
	})
}

// Stats describes the current snapshot without triggering a rebuild.
type Stats struct {
	HasSnapshot   bool      `json:"hasSnapshot"`
	TotalImages   int       `json:"totalImages"`
	TotalFolders  int       `json:"totalFolders"`
	TotalTags     int       `json:"totalTags"`
	BuiltAt       time.Time `json:"builtAt,omitempty"`
	ExpiresAt     time.Time `json:"expiresAt,omitempty"`
	BuildDuration string    `json:"buildDuration,omitempty"`
}

// Stats reports on the currently stored snapshot. It never scans.
func (s *Store) Stats() Stats {
	c := s.current.Load()
	if c == nil {
		return Stats{}
	}

	return Stats{
		HasSnapshot:   true,
		TotalImages:   len(c.snap.Images),
		TotalFolders:  len(c.snap.Folders),
		TotalTags:     countUniqueTags(c.snap.Folders),
		BuiltAt:       c.snap.BuiltAt,
		ExpiresAt:     c.expires,
		BuildDuration: (time.Duration(c.buildMS) * time.Millisecond).String(),
	}
}

// GetStats implements metrics.StatsProvider.
func (s *Store) GetStats() metrics.Stats {
	stats := s.Stats()
	return metrics.Stats{
		TotalImages:  stats.TotalImages,
		TotalFolders: stats.TotalFolders,
		TotalTags:    stats.TotalTags,
	}
}

func countUniqueTags(folders []library.Folder) int {
	seen := make(map[string]bool)
	for _, folder := range folders {
		for _, tag := range folder.Tags {
			seen[strings.ToLower(tag)] = true
		}
	}
	return len(seen)
}
